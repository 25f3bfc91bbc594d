// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

import "github.com/example/casedate/internal/core/dataset"

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// PersistEffect represents a ledger persistence operation.
type PersistEffect struct {
	Entity    string // e.g., "run"
	Operation string // e.g., "create"
	Data      any    // The entity data
}

func (e PersistEffect) EffectType() string { return "persist" }

// FileEffect represents a file system operation on a dataset.
type FileEffect struct {
	Operation string // "copy" (never overwrites), "replace" (atomic), "write_table"
	Path      string // Destination path
	Source    string // Source path for copy
	Table     *dataset.Table
}

func (e FileEffect) EffectType() string { return "file" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }

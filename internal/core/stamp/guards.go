package stamp

import (
	"fmt"

	"github.com/example/casedate/internal/core/dataset"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
	Kind    error  // Optional error kind the failure belongs to
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Kind != nil {
		return fmt.Errorf("%s: %w", r.Reason, r.Kind)
	}
	return fmt.Errorf("%s", r.Reason)
}

// StampContext provides context for the stamp guard.
// Populated by the caller with pre-fetched filesystem facts.
type StampContext struct {
	DatasetPath   string
	DatasetExists bool
	IDColumn      string
	DateColumn    string
	Periods       int
}

// CanStamp evaluates whether a stamp run may start.
// Rules: the dataset must exist, the window must have at least one month,
// and the date column must not clobber the identifier column.
func CanStamp(ctx StampContext) GuardResult {
	if !ctx.DatasetExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("dataset %s does not exist", ctx.DatasetPath),
			Kind:    dataset.ErrFileNotFound,
		}
	}
	if ctx.Periods < 1 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("period count must be at least 1, got %d", ctx.Periods),
		}
	}
	if ctx.IDColumn == "" || ctx.DateColumn == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "identifier and date column names must not be empty",
		}
	}
	if ctx.IDColumn == ctx.DateColumn {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("date column %q would overwrite the identifier column", ctx.DateColumn),
		}
	}
	return GuardResult{Allowed: true}
}

// RestoreContext provides context for the restore guard.
type RestoreContext struct {
	DatasetPath  string
	BackupPath   string
	BackupExists bool
}

// CanRestore evaluates whether the dataset can be rolled back.
// Rule: a backup must exist.
func CanRestore(ctx RestoreContext) GuardResult {
	if !ctx.BackupExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("no backup at %s to restore %s from", ctx.BackupPath, ctx.DatasetPath),
			Kind:    dataset.ErrFileNotFound,
		}
	}
	return GuardResult{Allowed: true}
}

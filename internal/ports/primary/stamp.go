// Package primary defines the primary ports (driving adapters) for the application.
package primary

import "context"

// StampService defines the primary port for dating the cases of a dataset.
type StampService interface {
	// Stamp backs up the dataset (once), assigns dates and rewrites it.
	Stamp(ctx context.Context, req StampRequest) (*StampResponse, error)

	// Preview computes the assignment without touching any file.
	Preview(ctx context.Context, req StampRequest) (*StampResponse, error)

	// Restore copies the backup back over the dataset.
	Restore(ctx context.Context, req RestoreRequest) (*RestoreResponse, error)
}

// StampRequest contains the parameters of a stamp or preview run.
type StampRequest struct {
	DatasetPath string
	BackupPath  string
	IDColumn    string
	DateColumn  string
	Start       string // YYYY-MM-DD
	Periods     int
}

// StampResponse describes the outcome of a stamp or preview run.
type StampResponse struct {
	RunID         string // empty for previews
	DatasetPath   string
	BackupPath    string
	BackupCreated bool
	DateColumn    string
	RowCount      int
	Assignments   []*CaseAssignment // in enumeration order
	WindowStart   string            // YYYY-MM-DD
	WindowEnd     string            // YYYY-MM-DD
	WindowLabel   string            // e.g. "Jan 2023 to Dec 2024"
}

// CaseAssignment is one identifier → date pair.
type CaseAssignment struct {
	Identifier string
	Date       string
}

// RestoreRequest contains the parameters of a restore.
type RestoreRequest struct {
	DatasetPath string
	BackupPath  string
}

// RestoreResponse describes a completed restore.
type RestoreResponse struct {
	RunID       string
	DatasetPath string
	BackupPath  string
}

package primary

import "context"

// RunService defines the primary port for reading the run ledger.
type RunService interface {
	// ListRuns retrieves runs matching the given filters, newest first.
	ListRuns(ctx context.Context, filters RunFilters) ([]*Run, error)

	// GetRun retrieves a single run with its assignments.
	GetRun(ctx context.Context, runID string) (*Run, error)
}

// Run represents a ledger entry at the port boundary.
type Run struct {
	ID              string
	Kind            string // "stamp" or "restore"
	DatasetPath     string
	BackupPath      string
	BackupCreated   bool
	RowCount        int
	IdentifierCount int
	WindowStart     string
	WindowEnd       string
	ChecksumBefore  string
	ChecksumAfter   string
	CreatedAt       string
	Assignments     []*CaseAssignment // populated by GetRun only
}

// RunFilters contains filter options for querying runs.
type RunFilters struct {
	DatasetPath string
	Kind        string
	Limit       int
}

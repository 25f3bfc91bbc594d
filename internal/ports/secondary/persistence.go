package secondary

import "context"

// RunRepository defines the secondary port for the run ledger.
type RunRepository interface {
	// Create persists a new run together with its assignments.
	Create(ctx context.Context, run *RunRecord, assignments []*AssignmentRecord) error

	// GetByID retrieves a run by its ID.
	GetByID(ctx context.Context, id string) (*RunRecord, error)

	// List retrieves runs matching the given filters, newest first.
	List(ctx context.Context, filters RunFilters) ([]*RunRecord, error)

	// ListAssignments retrieves a run's assignments in enumeration order.
	ListAssignments(ctx context.Context, runID string) ([]*AssignmentRecord, error)
}

// RunRecord represents a run as stored in persistence.
type RunRecord struct {
	ID              string
	Kind            string
	DatasetPath     string
	BackupPath      string
	BackupCreated   bool
	RowCount        int
	IdentifierCount int
	WindowStart     string // empty for restores
	WindowEnd       string
	ChecksumBefore  string
	ChecksumAfter   string
	CreatedAt       string
}

// AssignmentRecord represents one identifier → date pair of a run.
type AssignmentRecord struct {
	RunID      string
	Position   int
	Identifier string
	Date       string
}

// RunFilters contains filter options for querying runs.
type RunFilters struct {
	DatasetPath string
	Kind        string
	Limit       int
}

// Run kinds.
const (
	RunKindStamp   = "stamp"
	RunKindRestore = "restore"
)

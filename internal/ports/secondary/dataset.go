// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import (
	"context"

	"github.com/example/casedate/internal/core/dataset"
)

// DatasetStore defines the secondary port for reading and writing dataset files.
type DatasetStore interface {
	// Exists reports whether a regular file is present at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Load parses the CSV file at path into a table.
	Load(ctx context.Context, path string) (*dataset.Table, error)

	// Save replaces the file at path with tbl.
	Save(ctx context.Context, path string, tbl *dataset.Table) error

	// CopyNew copies src to a dst that must not exist yet.
	CopyNew(ctx context.Context, src, dst string) error

	// Replace atomically overwrites dst with the bytes of src.
	Replace(ctx context.Context, src, dst string) error

	// Checksum returns the hex SHA-256 of the file at path.
	Checksum(ctx context.Context, path string) (string, error)
}

package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/example/casedate/internal/ports/secondary"
)

// Ensure mockRunRepository implements the interface
var _ secondary.RunRepository = (*mockRunRepository)(nil)

// mockRunRepository implements secondary.RunRepository for testing.
type mockRunRepository struct {
	runs        map[string]*secondary.RunRecord
	order       []string
	assignments map[string][]*secondary.AssignmentRecord
	createErr   error
	listErr     error
}

func newMockRunRepository() *mockRunRepository {
	return &mockRunRepository{
		runs:        make(map[string]*secondary.RunRecord),
		assignments: make(map[string][]*secondary.AssignmentRecord),
	}
}

func (m *mockRunRepository) Create(ctx context.Context, run *secondary.RunRecord, assignments []*secondary.AssignmentRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if run.CreatedAt == "" {
		run.CreatedAt = "2026-01-01T00:00:00Z"
	}
	m.runs[run.ID] = run
	m.order = append(m.order, run.ID)
	m.assignments[run.ID] = assignments
	return nil
}

func (m *mockRunRepository) GetByID(ctx context.Context, id string) (*secondary.RunRecord, error) {
	if run, ok := m.runs[id]; ok {
		return run, nil
	}
	return nil, errors.New("run not found")
}

func (m *mockRunRepository) List(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.RunRecord
	for i := len(m.order) - 1; i >= 0; i-- {
		run := m.runs[m.order[i]]
		if filters.DatasetPath != "" && run.DatasetPath != filters.DatasetPath {
			continue
		}
		if filters.Kind != "" && run.Kind != filters.Kind {
			continue
		}
		result = append(result, run)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockRunRepository) ListAssignments(ctx context.Context, runID string) ([]*secondary.AssignmentRecord, error) {
	assignments := m.assignments[runID]
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].Position < assignments[j].Position })
	return assignments, nil
}

// writeDataset writes a CSV file into a fresh temp dir and returns its path.
func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func readDataset(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

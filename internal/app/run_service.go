package app

import (
	"context"
	"fmt"

	"github.com/example/casedate/internal/ports/primary"
	"github.com/example/casedate/internal/ports/secondary"
)

// RunServiceImpl implements the RunService interface.
type RunServiceImpl struct {
	runRepo secondary.RunRepository
}

// NewRunService creates a new RunService with injected dependencies.
func NewRunService(runRepo secondary.RunRepository) *RunServiceImpl {
	return &RunServiceImpl{
		runRepo: runRepo,
	}
}

// ListRuns retrieves runs matching the given filters, newest first.
func (s *RunServiceImpl) ListRuns(ctx context.Context, filters primary.RunFilters) ([]*primary.Run, error) {
	records, err := s.runRepo.List(ctx, secondary.RunFilters{
		DatasetPath: filters.DatasetPath,
		Kind:        filters.Kind,
		Limit:       filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*primary.Run, len(records))
	for i, r := range records {
		runs[i] = s.recordToRun(r)
	}
	return runs, nil
}

// GetRun retrieves a single run with its assignments.
func (s *RunServiceImpl) GetRun(ctx context.Context, runID string) (*primary.Run, error) {
	record, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.runRepo.ListAssignments(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	run := s.recordToRun(record)
	run.Assignments = make([]*primary.CaseAssignment, len(assignments))
	for i, a := range assignments {
		run.Assignments[i] = &primary.CaseAssignment{Identifier: a.Identifier, Date: a.Date}
	}
	return run, nil
}

// Helper methods

func (s *RunServiceImpl) recordToRun(r *secondary.RunRecord) *primary.Run {
	return &primary.Run{
		ID:              r.ID,
		Kind:            r.Kind,
		DatasetPath:     r.DatasetPath,
		BackupPath:      r.BackupPath,
		BackupCreated:   r.BackupCreated,
		RowCount:        r.RowCount,
		IdentifierCount: r.IdentifierCount,
		WindowStart:     r.WindowStart,
		WindowEnd:       r.WindowEnd,
		ChecksumBefore:  r.ChecksumBefore,
		ChecksumAfter:   r.ChecksumAfter,
		CreatedAt:       r.CreatedAt,
	}
}

// Ensure RunServiceImpl implements the interface
var _ primary.RunService = (*RunServiceImpl)(nil)

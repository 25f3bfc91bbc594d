package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/casedate/internal/core/effects"
	corestamp "github.com/example/casedate/internal/core/stamp"
	"github.com/example/casedate/internal/ports/primary"
	"github.com/example/casedate/internal/ports/secondary"
)

// StampServiceImpl implements the StampService interface.
type StampServiceImpl struct {
	store    secondary.DatasetStore
	executor EffectExecutor
	logger   *zap.Logger
	newID    func() string
}

// NewStampService creates a new StampService with injected dependencies.
func NewStampService(store secondary.DatasetStore, executor EffectExecutor, logger *zap.Logger) *StampServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StampServiceImpl{
		store:    store,
		executor: executor,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Stamp validates the dataset, backs it up if no backup exists yet, assigns
// dates and rewrites it, then records the run in the ledger.
func (s *StampServiceImpl) Stamp(ctx context.Context, req primary.StampRequest) (*primary.StampResponse, error) {
	plan, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}

	checksumBefore, err := s.store.Checksum(ctx, req.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to hash dataset: %w", err)
	}

	if err := s.executor.Execute(ctx, plan.Effects()); err != nil {
		return nil, err
	}

	checksumAfter, err := s.store.Checksum(ctx, req.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to hash stamped dataset: %w", err)
	}

	resp := s.planToResponse(plan, req.DateColumn)
	resp.RunID = s.newID()

	run := &secondary.RunRecord{
		ID:              resp.RunID,
		Kind:            secondary.RunKindStamp,
		DatasetPath:     req.DatasetPath,
		BackupPath:      req.BackupPath,
		BackupCreated:   plan.CreateBackup,
		RowCount:        resp.RowCount,
		IdentifierCount: len(resp.Assignments),
		WindowStart:     resp.WindowStart,
		WindowEnd:       resp.WindowEnd,
		ChecksumBefore:  checksumBefore,
		ChecksumAfter:   checksumAfter,
	}
	assignments := make([]*secondary.AssignmentRecord, len(resp.Assignments))
	for i, a := range resp.Assignments {
		assignments[i] = &secondary.AssignmentRecord{
			RunID:      run.ID,
			Position:   i,
			Identifier: a.Identifier,
			Date:       a.Date,
		}
	}

	// The dataset is already written; a ledger failure is reported but not rolled back.
	if err := s.record(ctx, run, assignments); err != nil {
		return resp, err
	}

	return resp, nil
}

// Preview runs validation and assignment without touching any file.
func (s *StampServiceImpl) Preview(ctx context.Context, req primary.StampRequest) (*primary.StampResponse, error) {
	plan, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.planToResponse(plan, req.DateColumn), nil
}

// Restore copies the backup back over the dataset and records the run.
func (s *StampServiceImpl) Restore(ctx context.Context, req primary.RestoreRequest) (*primary.RestoreResponse, error) {
	backupExists, err := s.store.Exists(ctx, req.BackupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check backup: %w", err)
	}

	guardCtx := corestamp.RestoreContext{
		DatasetPath:  req.DatasetPath,
		BackupPath:   req.BackupPath,
		BackupExists: backupExists,
	}
	if result := corestamp.CanRestore(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// The dataset may have been deleted; restoring it is still allowed.
	var checksumBefore string
	if exists, err := s.store.Exists(ctx, req.DatasetPath); err == nil && exists {
		if checksumBefore, err = s.store.Checksum(ctx, req.DatasetPath); err != nil {
			return nil, fmt.Errorf("failed to hash dataset: %w", err)
		}
	}

	plan := corestamp.GenerateRestorePlan(corestamp.RestorePlanInput{
		DatasetPath: req.DatasetPath,
		BackupPath:  req.BackupPath,
	})
	if err := s.executor.Execute(ctx, plan.Effects()); err != nil {
		return nil, err
	}

	checksumAfter, err := s.store.Checksum(ctx, req.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to hash restored dataset: %w", err)
	}

	resp := &primary.RestoreResponse{
		RunID:       s.newID(),
		DatasetPath: req.DatasetPath,
		BackupPath:  req.BackupPath,
	}
	run := &secondary.RunRecord{
		ID:             resp.RunID,
		Kind:           secondary.RunKindRestore,
		DatasetPath:    req.DatasetPath,
		BackupPath:     req.BackupPath,
		ChecksumBefore: checksumBefore,
		ChecksumAfter:  checksumAfter,
	}
	if err := s.record(ctx, run, nil); err != nil {
		return resp, err
	}

	return resp, nil
}

// plan gathers every fact the planner needs and validates the dataset before
// anything is written: a dataset that cannot be stamped is never backed up.
func (s *StampServiceImpl) plan(ctx context.Context, req primary.StampRequest) (corestamp.StampPlan, error) {
	start, err := time.Parse(corestamp.DateLayout, req.Start)
	if err != nil {
		return corestamp.StampPlan{}, fmt.Errorf("invalid start date %q: %w", req.Start, err)
	}

	// 1. Check guard
	exists, err := s.store.Exists(ctx, req.DatasetPath)
	if err != nil {
		return corestamp.StampPlan{}, fmt.Errorf("failed to check dataset: %w", err)
	}
	guardCtx := corestamp.StampContext{
		DatasetPath:   req.DatasetPath,
		DatasetExists: exists,
		IDColumn:      req.IDColumn,
		DateColumn:    req.DateColumn,
		Periods:       req.Periods,
	}
	if result := corestamp.CanStamp(guardCtx); !result.Allowed {
		return corestamp.StampPlan{}, result.Error()
	}

	// 2. Load and enumerate identifiers
	tbl, err := s.store.Load(ctx, req.DatasetPath)
	if err != nil {
		return corestamp.StampPlan{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	ids, err := tbl.DistinctValues(req.IDColumn)
	if err != nil {
		return corestamp.StampPlan{}, fmt.Errorf("failed to enumerate identifiers in %s: %w", req.DatasetPath, err)
	}
	s.logger.Debug("dataset loaded",
		zap.String("path", req.DatasetPath),
		zap.Int("rows", len(tbl.Rows)),
		zap.Int("identifiers", len(ids)),
	)

	// 3. Backup state
	backupExists, err := s.store.Exists(ctx, req.BackupPath)
	if err != nil {
		return corestamp.StampPlan{}, fmt.Errorf("failed to check backup: %w", err)
	}

	// 4. Plan
	plan, err := corestamp.GenerateStampPlan(corestamp.StampPlanInput{
		DatasetPath:  req.DatasetPath,
		BackupPath:   req.BackupPath,
		BackupExists: backupExists,
		IDColumn:     req.IDColumn,
		DateColumn:   req.DateColumn,
		Table:        tbl,
		Identifiers:  ids,
		Sequence:     corestamp.MonthStarts(start, req.Periods),
	})
	if err != nil {
		return corestamp.StampPlan{}, fmt.Errorf("failed to plan stamp: %w", err)
	}
	return plan, nil
}

func (s *StampServiceImpl) record(ctx context.Context, run *secondary.RunRecord, assignments []*secondary.AssignmentRecord) error {
	err := s.executor.Execute(ctx, []effects.Effect{effects.PersistEffect{
		Entity:    "run",
		Operation: "create",
		Data:      RunPersistData{Run: run, Assignments: assignments},
	}})
	if err != nil {
		return fmt.Errorf("dataset updated but run %s was not recorded: %w", run.ID, err)
	}
	return nil
}

// Helper methods

func (s *StampServiceImpl) planToResponse(plan corestamp.StampPlan, dateColumn string) *primary.StampResponse {
	assignments := make([]*primary.CaseAssignment, len(plan.Assignment.Order))
	for i, id := range plan.Assignment.Order {
		assignments[i] = &primary.CaseAssignment{
			Identifier: id,
			Date:       plan.Assignment.Dates[id],
		}
	}
	return &primary.StampResponse{
		DatasetPath:   plan.DatasetPath,
		BackupPath:    plan.BackupPath,
		BackupCreated: plan.CreateBackup,
		DateColumn:    dateColumn,
		RowCount:      len(plan.Output.Rows),
		Assignments:   assignments,
		WindowStart:   plan.Sequence.First().Format(corestamp.DateLayout),
		WindowEnd:     plan.Sequence.Last().Format(corestamp.DateLayout),
		WindowLabel:   plan.Sequence.RangeLabel(),
	}
}

// Ensure StampServiceImpl implements the interface
var _ primary.StampService = (*StampServiceImpl)(nil)

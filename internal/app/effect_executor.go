// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/casedate/internal/core/effects"
	"github.com/example/casedate/internal/logging"
	"github.com/example/casedate/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// RunPersistData is the payload of a "run"/"create" PersistEffect.
type RunPersistData struct {
	Run         *secondary.RunRecord
	Assignments []*secondary.AssignmentRecord
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	store   secondary.DatasetStore
	runRepo secondary.RunRepository
	logger  *zap.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(store secondary.DatasetStore, runRepo secondary.RunRepository, logger *zap.Logger) *DefaultEffectExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEffectExecutor{
		store:   store,
		runRepo: runRepo,
		logger:  logger,
	}
}

// Execute processes a slice of effects, executing each in sequence.
// It stops at the first failure.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.PersistEffect:
		return e.executePersist(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		if ce := e.logger.Check(logging.Level(typed.Level), typed.Message); ce != nil {
			ce.Write(logging.Fields(typed.Fields)...)
		}
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	e.logger.Debug("file effect",
		zap.String("op", eff.Operation),
		zap.String("path", eff.Path),
		zap.String("source", eff.Source),
	)

	switch eff.Operation {
	case "copy":
		return e.store.CopyNew(ctx, eff.Source, eff.Path)
	case "replace":
		return e.store.Replace(ctx, eff.Source, eff.Path)
	case "write_table":
		if eff.Table == nil {
			return fmt.Errorf("write_table effect for %s has no table", eff.Path)
		}
		return e.store.Save(ctx, eff.Path, eff.Table)
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executePersist(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Entity {
	case "run":
		return e.executeRunOp(ctx, eff)
	default:
		return fmt.Errorf("unknown entity: %s", eff.Entity)
	}
}

func (e *DefaultEffectExecutor) executeRunOp(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Operation {
	case "create":
		data, ok := eff.Data.(RunPersistData)
		if !ok {
			return fmt.Errorf("invalid run create data type: %T", eff.Data)
		}
		e.logger.Debug("recording run",
			zap.String("id", data.Run.ID),
			zap.String("kind", data.Run.Kind),
			zap.Int("assignments", len(data.Assignments)),
		)
		return e.runRepo.Create(ctx, data.Run, data.Assignments)
	default:
		return fmt.Errorf("unknown run operation: %s", eff.Operation)
	}
}

// Ensure DefaultEffectExecutor implements the interface
var _ EffectExecutor = (*DefaultEffectExecutor)(nil)

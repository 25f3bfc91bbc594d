// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/casedate/internal/ports/secondary"
)

// RunRepository implements secondary.RunRepository with SQLite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create persists a run and its assignments in one transaction.
func (r *RunRepository) Create(ctx context.Context, run *secondary.RunRecord, assignments []*secondary.AssignmentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, kind, dataset_path, backup_path, backup_created, row_count, identifier_count, window_start, window_end, checksum_before, checksum_after) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Kind,
		run.DatasetPath,
		run.BackupPath,
		run.BackupCreated,
		run.RowCount,
		run.IdentifierCount,
		nullString(run.WindowStart),
		nullString(run.WindowEnd),
		nullString(run.ChecksumBefore),
		nullString(run.ChecksumAfter),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	if len(assignments) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO assignments (run_id, position, identifier, assigned_date) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare assignment insert: %w", err)
		}
		defer stmt.Close()

		for _, a := range assignments {
			if _, err := stmt.ExecContext(ctx, run.ID, a.Position, a.Identifier, a.Date); err != nil {
				return fmt.Errorf("failed to create assignment %d: %w", a.Position, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*secondary.RunRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, kind, dataset_path, backup_path, backup_created, row_count, identifier_count, window_start, window_end, checksum_before, checksum_after, created_at FROM runs WHERE id = ?`,
		id,
	)

	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record, nil
}

// List retrieves runs matching the given filters, newest first.
func (r *RunRepository) List(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	query := `SELECT id, kind, dataset_path, backup_path, backup_created, row_count, identifier_count, window_start, window_end, checksum_before, checksum_after, created_at FROM runs WHERE 1=1`
	args := []any{}

	if filters.DatasetPath != "" {
		query += " AND dataset_path = ?"
		args = append(args, filters.DatasetPath)
	}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// ListAssignments retrieves a run's assignments in enumeration order.
func (r *RunRepository) ListAssignments(ctx context.Context, runID string) ([]*secondary.AssignmentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT run_id, position, identifier, assigned_date FROM assignments WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*secondary.AssignmentRecord
	for rows.Next() {
		a := &secondary.AssignmentRecord{}
		if err := rows.Scan(&a.RunID, &a.Position, &a.Identifier, &a.Date); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*secondary.RunRecord, error) {
	var (
		windowStart    sql.NullString
		windowEnd      sql.NullString
		checksumBefore sql.NullString
		checksumAfter  sql.NullString
		createdAt      time.Time
	)

	record := &secondary.RunRecord{}
	err := s.Scan(&record.ID,
		&record.Kind,
		&record.DatasetPath,
		&record.BackupPath,
		&record.BackupCreated,
		&record.RowCount,
		&record.IdentifierCount,
		&windowStart,
		&windowEnd,
		&checksumBefore,
		&checksumAfter,
		&createdAt)
	if err != nil {
		return nil, err
	}

	record.WindowStart = windowStart.String
	record.WindowEnd = windowEnd.String
	record.ChecksumBefore = checksumBefore.String
	record.ChecksumAfter = checksumAfter.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure RunRepository implements the interface
var _ secondary.RunRepository = (*RunRepository)(nil)

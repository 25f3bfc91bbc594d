package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/casedate/internal/ports/primary"
)

// RunAdapter is a thin adapter that translates CLI operations to RunService calls.
type RunAdapter struct {
	service primary.RunService
	out     io.Writer
}

// NewRunAdapter creates a new RunAdapter with the given service.
func NewRunAdapter(service primary.RunService, out io.Writer) *RunAdapter {
	return &RunAdapter{
		service: service,
		out:     out,
	}
}

// List lists ledger runs.
func (a *RunAdapter) List(ctx context.Context, filters primary.RunFilters) error {
	runs, err := a.service.ListRuns(ctx, filters)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-36s %-8s %-20s %-6s %s\n", "ID", "KIND", "WHEN", "CASES", "DATASET")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────────────────────────────────────────────")
	for _, r := range runs {
		cases := "-"
		if r.Kind == "stamp" {
			cases = fmt.Sprintf("%d", r.IdentifierCount)
		}
		fmt.Fprintf(a.out, "%-36s %-8s %-20s %-6s %s\n", r.ID, r.Kind, r.CreatedAt, cases, r.DatasetPath)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays a single run and its assignments.
func (a *RunAdapter) Show(ctx context.Context, runID string) error {
	run, err := a.service.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	fmt.Fprintf(a.out, "\nRun:     %s\n", run.ID)
	fmt.Fprintf(a.out, "Kind:    %s\n", run.Kind)
	fmt.Fprintf(a.out, "Dataset: %s\n", run.DatasetPath)
	fmt.Fprintf(a.out, "Backup:  %s", run.BackupPath)
	if run.BackupCreated {
		fmt.Fprint(a.out, " (created by this run)")
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "When:    %s\n", run.CreatedAt)
	if run.WindowStart != "" {
		fmt.Fprintf(a.out, "Window:  %s .. %s\n", run.WindowStart, run.WindowEnd)
		fmt.Fprintf(a.out, "Rows:    %d\n", run.RowCount)
	}
	if run.ChecksumBefore != "" {
		fmt.Fprintf(a.out, "Before:  %s\n", dimInk.Sprint(run.ChecksumBefore))
	}
	fmt.Fprintf(a.out, "After:   %s\n", dimInk.Sprint(run.ChecksumAfter))

	if run.Kind == "stamp" {
		printAssignments(a.out, run.Assignments, 0)
	} else {
		fmt.Fprintln(a.out)
	}

	return nil
}

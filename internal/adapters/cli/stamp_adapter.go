// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting, but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/casedate/internal/ports/primary"
)

var (
	okInk   = color.New(color.FgGreen)
	warnInk = color.New(color.FgYellow)
	dateInk = color.New(color.FgCyan)
	dimInk  = color.New(color.FgHiBlack)
)

// StampAdapter is a thin adapter that translates CLI operations to StampService calls.
type StampAdapter struct {
	service primary.StampService
	out     io.Writer
}

// NewStampAdapter creates a new StampAdapter with the given service.
func NewStampAdapter(service primary.StampService, out io.Writer) *StampAdapter {
	return &StampAdapter{
		service: service,
		out:     out,
	}
}

// Stamp runs the full pipeline and prints the summary.
func (a *StampAdapter) Stamp(ctx context.Context, req primary.StampRequest) error {
	resp, err := a.service.Stamp(ctx, req)
	if resp != nil {
		a.printStampSummary(resp)
	}
	return err
}

// Preview prints the assignment a stamp would make. With limit > 0 only the
// first limit identifiers are listed.
func (a *StampAdapter) Preview(ctx context.Context, req primary.StampRequest, limit int) error {
	resp, err := a.service.Preview(ctx, req)
	if err != nil {
		return err
	}

	if resp.BackupCreated {
		fmt.Fprintf(a.out, "%s Would create backup at %s\n", warnInk.Sprint("⚠"), resp.BackupPath)
	} else {
		fmt.Fprintf(a.out, "Backup already present at %s\n", resp.BackupPath)
	}
	fmt.Fprintf(a.out, "Would write %s column to %s (%d rows)\n", resp.DateColumn, resp.DatasetPath, resp.RowCount)

	printAssignments(a.out, resp.Assignments, limit)

	fmt.Fprintf(a.out, "Would assign %d unique case numbers to dates ranging from %s\n", len(resp.Assignments), resp.WindowLabel)
	return nil
}

// Restore rolls the dataset back to its backup.
func (a *StampAdapter) Restore(ctx context.Context, req primary.RestoreRequest) error {
	resp, err := a.service.Restore(ctx, req)
	if resp != nil {
		fmt.Fprintf(a.out, "%s Restored %s from %s\n", okInk.Sprint("✓"), resp.DatasetPath, resp.BackupPath)
		fmt.Fprintf(a.out, "%s\n", dimInk.Sprintf("Run: %s", resp.RunID))
	}
	return err
}

func (a *StampAdapter) printStampSummary(resp *primary.StampResponse) {
	if resp.BackupCreated {
		fmt.Fprintf(a.out, "%s Backup created at %s\n", okInk.Sprint("✓"), resp.BackupPath)
	}
	fmt.Fprintf(a.out, "%s Added %s column to %s\n", okInk.Sprint("✓"), resp.DateColumn, resp.DatasetPath)
	fmt.Fprintf(a.out, "Assigned %d unique case numbers to dates ranging from %s\n", len(resp.Assignments), resp.WindowLabel)
	fmt.Fprintf(a.out, "%s\n", dimInk.Sprintf("Run: %s", resp.RunID))
}

func printAssignments(out io.Writer, assignments []*primary.CaseAssignment, limit int) {
	if len(assignments) == 0 {
		fmt.Fprintln(out, "No case numbers found")
		return
	}

	shown := assignments
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	fmt.Fprintf(out, "\n%-6s %-24s %s\n", "#", "CASE", "DATE")
	fmt.Fprintln(out, "────────────────────────────────────────────")
	for i, a := range shown {
		fmt.Fprintf(out, "%-6d %-24s %s\n", i+1, a.Identifier, dateInk.Sprint(a.Date))
	}
	if len(shown) < len(assignments) {
		fmt.Fprintf(out, "... %d more\n", len(assignments)-len(shown))
	}
	fmt.Fprintln(out)
}

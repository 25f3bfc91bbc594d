package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/casedate/internal/config"
	"github.com/example/casedate/internal/core/dataset"
	"github.com/example/casedate/internal/db"
	"github.com/example/casedate/internal/ports/secondary"
	"github.com/example/casedate/internal/wire"
)

const (
	statusOK   = "✓"
	statusWarn = "⚠"
	statusFail = "✗"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for dataset and ledger validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the dataset and ledger are ready for a stamp",
		Long: `Read-only health check for casedate.

Validates:
- Dataset exists and parses as CSV
- Identifier column is present
- Backup exists (warning only; the next stamp creates it)
- Ledger database is reachable

Examples:
  casedate doctor              # Run full health check
  casedate doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ledgerPath, err := cfg.ResolveLedgerPath()
			if err != nil {
				return err
			}

			results := runChecks(cmd.Context(), wire.DatasetStore(), cfg, ledgerPath)

			var out io.Writer = cmd.OutOrStdout()
			if quiet {
				out = io.Discard
			}
			if !printResults(out, results) {
				return errors.New("dataset validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// runChecks runs every check in display order.
func runChecks(ctx context.Context, store secondary.DatasetStore, cfg *config.Config, ledgerPath string) []CheckResult {
	datasetResult, tbl := checkDataset(ctx, store, cfg.DatasetPath)
	return []CheckResult{
		datasetResult,
		checkIDColumn(tbl, cfg.IDColumn),
		checkBackup(ctx, store, cfg.BackupPath()),
		checkLedger(ledgerPath),
	}
}

// printResults prints the check table and reports whether every check passed
// without errors.
func printResults(out io.Writer, results []CheckResult) bool {
	healthy := true
	for _, r := range results {
		if r.Status == statusFail {
			healthy = false
			break
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, colorStatus(r.Status))
	}
	fmt.Fprintln(out)

	hasDetails := false
	for _, r := range results {
		if r.Status != statusOK && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if healthy {
		fmt.Fprintln(out, "All checks passed.")
	} else {
		fmt.Fprintf(out, "\n%s Issues found.\n", colorStatus(statusWarn))
	}
	return healthy
}

func colorStatus(status string) string {
	switch status {
	case statusOK:
		return color.GreenString(status)
	case statusWarn:
		return color.YellowString(status)
	default:
		return color.RedString(status)
	}
}

// checkDataset loads the dataset, returning the table for the checks that follow.
func checkDataset(ctx context.Context, store secondary.DatasetStore, path string) (CheckResult, *dataset.Table) {
	tbl, err := store.Load(ctx, path)
	if err != nil {
		details := "  " + err.Error()
		if errors.Is(err, dataset.ErrFileNotFound) {
			details = fmt.Sprintf("  %s not found\n  Pass --file or set dataset_path in the config file", path)
		}
		return CheckResult{Name: "Dataset", Status: statusFail, Details: details}, nil
	}

	return CheckResult{
		Name:    "Dataset",
		Status:  statusOK,
		Details: fmt.Sprintf("  %s (%d rows)", path, len(tbl.Rows)),
	}, tbl
}

// checkIDColumn verifies the identifier column is present in tbl.
func checkIDColumn(tbl *dataset.Table, column string) CheckResult {
	if tbl == nil {
		return CheckResult{Name: "Case Column", Status: statusWarn, Details: "  Skipped: dataset not readable"}
	}

	if !tbl.HasColumn(column) {
		return CheckResult{
			Name:    "Case Column",
			Status:  statusFail,
			Details: fmt.Sprintf("  Column %q not found\n  Available: %s", column, strings.Join(tbl.Header, ", ")),
		}
	}

	return CheckResult{Name: "Case Column", Status: statusOK}
}

// checkBackup warns when no backup has been taken yet.
func checkBackup(ctx context.Context, store secondary.DatasetStore, backupPath string) CheckResult {
	exists, err := store.Exists(ctx, backupPath)
	if err != nil {
		return CheckResult{Name: "Backup", Status: statusFail, Details: "  " + err.Error()}
	}
	if !exists {
		return CheckResult{
			Name:    "Backup",
			Status:  statusWarn,
			Details: fmt.Sprintf("  No backup at %s yet\n  The next stamp creates it", backupPath),
		}
	}
	return CheckResult{Name: "Backup", Status: statusOK}
}

// checkLedger opens the ledger if it exists. A missing ledger is only a
// warning; the first stamp creates it.
func checkLedger(path string) CheckResult {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Ledger",
			Status:  statusWarn,
			Details: fmt.Sprintf("  %s not created yet", path),
		}
	}

	database, err := db.Open(path)
	if err != nil {
		return CheckResult{Name: "Ledger", Status: statusFail, Details: "  " + err.Error()}
	}
	defer database.Close()

	v, err := db.CurrentVersion(database)
	if err != nil {
		return CheckResult{Name: "Ledger", Status: statusFail, Details: "  " + err.Error()}
	}

	return CheckResult{Name: "Ledger", Status: statusOK, Details: fmt.Sprintf("  %s (schema v%d)", path, v)}
}

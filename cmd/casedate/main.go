package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/casedate/internal/cli"
	"github.com/example/casedate/internal/version"
	"github.com/example/casedate/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "casedate",
		Short:   "casedate - assign monthly dates to the cases of a CSV dataset",
		Version: version.String(),
		Long: `casedate backs up a CSV dataset, gives every distinct case identifier a
month-start date from a fixed window, and writes that date into every row of
the case. Runs are recorded in a local ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Dataset commands
	rootCmd.AddCommand(cli.StampCmd())
	rootCmd.AddCommand(cli.PreviewCmd())
	rootCmd.AddCommand(cli.RestoreCmd())

	// Ledger and environment
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()
	if closeErr := wire.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

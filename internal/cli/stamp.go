package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/casedate/internal/ports/primary"
	"github.com/example/casedate/internal/wire"
)

// StampCmd returns the command that backs up the dataset and writes the dates.
func StampCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stamp",
		Short: "Assign a month to every case and write it into the dataset",
		Long: `Back up the dataset (only if no backup exists yet), assign each distinct
case identifier a month-start date from the configured window, and write the
dates into the date column.

The i-th distinct case, in order of first appearance, gets the i-th month of
the window; past the end of the window the months repeat.

Examples:
  casedate stamp
  casedate stamp --file data/results.csv --start 2022-06 --periods 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configure(cmd)
			if err != nil {
				return err
			}
			req, err := stampRequest(cfg)
			if err != nil {
				return err
			}

			return wire.StampAdapterWithOutput(cmd.OutOrStdout()).Stamp(cmd.Context(), req)
		},
	}
}

// PreviewCmd returns the dry-run command.
func PreviewCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the dates a stamp would assign without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configure(cmd)
			if err != nil {
				return err
			}
			req, err := stampRequest(cfg)
			if err != nil {
				return err
			}

			return wire.StampAdapterWithOutput(cmd.OutOrStdout()).Preview(cmd.Context(), req, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum cases to list (0 = all)")

	return cmd
}

// RestoreCmd returns the command that copies the backup over the dataset.
func RestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the dataset from its backup",
		Long: `Copy the backup over the dataset, undoing every stamp since the backup
was taken. The backup itself is left in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configure(cmd)
			if err != nil {
				return err
			}

			req := primary.RestoreRequest{
				DatasetPath: cfg.DatasetPath,
				BackupPath:  cfg.BackupPath(),
			}
			return wire.StampAdapterWithOutput(cmd.OutOrStdout()).Restore(cmd.Context(), req)
		},
	}
}

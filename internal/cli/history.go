package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casedate/internal/ports/primary"
	"github.com/example/casedate/internal/wire"
)

// HistoryCmd returns the command that lists recorded runs.
func HistoryCmd() *cobra.Command {
	var (
		kind  string
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stamp and restore runs recorded in the ledger",
		Long: `List runs recorded in the ledger, newest first. By default only runs
against the configured dataset are shown.

Examples:
  casedate history
  casedate history --all --kind restore
  casedate history show <run-id>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "" && kind != "stamp" && kind != "restore" {
				return fmt.Errorf("invalid kind %q: must be stamp or restore", kind)
			}

			cfg, err := configure(cmd)
			if err != nil {
				return err
			}

			filters := primary.RunFilters{Kind: kind, Limit: limit}
			if !all {
				filters.DatasetPath = cfg.DatasetPath
			}
			return wire.RunAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(), filters)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only runs of this kind (stamp, restore)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 = all)")
	cmd.Flags().BoolVar(&all, "all", false, "Include runs against every dataset")

	cmd.AddCommand(historyShowCmd())

	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show a run and the date it gave each case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := configure(cmd); err != nil {
				return err
			}
			return wire.RunAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0])
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casedate/internal/config"
)

// ConfigCmd returns the command group for inspecting and saving configuration.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save [path]",
		Short: "Write the effective configuration to a YAML file",
		Long: `Write the effective configuration (defaults, --config file and flags)
to path, for use with --config later.

Examples:
  casedate config save casedate.yaml --start 2022-01 --periods 36`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.SaveConfig(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved config to %s\n", args[0])
			return nil
		},
	})

	return cmd
}

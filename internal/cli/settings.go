package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casedate/internal/config"
	"github.com/example/casedate/internal/core/stamp"
	"github.com/example/casedate/internal/ports/primary"
	"github.com/example/casedate/internal/wire"
)

// AddGlobalFlags registers the flags every command shares.
func AddGlobalFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("file", config.DefaultDatasetPath, "CSV dataset to stamp")
	f.String("id-column", config.DefaultIDColumn, "Column holding the case identifier")
	f.String("date-column", config.DefaultDateColumn, "Column to write the assigned date into")
	f.String("start", config.DefaultStart, "First month of the date window (YYYY-MM-DD or YYYY-MM)")
	f.Int("periods", config.DefaultPeriods, "Number of month-starts in the date window")
	f.String("backup-suffix", config.DefaultBackupSuffix, "Suffix appended to the dataset path for the backup")
	f.String("ledger", "", "Run ledger database (default ~/.casedate/ledger.db)")
	f.String("config", "", "YAML config file")
	f.BoolP("verbose", "v", false, "Debug logging to stderr")
}

// loadConfig builds the effective configuration: defaults, then the
// --config file, then any flag given explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"file", &cfg.DatasetPath},
		{"id-column", &cfg.IDColumn},
		{"date-column", &cfg.DateColumn},
		{"start", &cfg.Start},
		{"backup-suffix", &cfg.BackupSuffix},
		{"ledger", &cfg.LedgerPath},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.dst, _ = flags.GetString(o.flag)
		}
	}
	if flags.Changed("periods") {
		cfg.Periods, _ = flags.GetInt("periods")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configure loads the configuration and points the service wiring at it.
func configure(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	ledgerPath, err := cfg.ResolveLedgerPath()
	if err != nil {
		return nil, err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	wire.Configure(wire.Options{
		LedgerPath: ledgerPath,
		Verbose:    verbose,
		LogOutput:  cmd.ErrOrStderr(),
	})
	return cfg, nil
}

// stampRequest translates the configuration into a service request.
func stampRequest(cfg *config.Config) (primary.StampRequest, error) {
	start, err := cfg.StartTime()
	if err != nil {
		return primary.StampRequest{}, fmt.Errorf("invalid start: %w", err)
	}

	return primary.StampRequest{
		DatasetPath: cfg.DatasetPath,
		BackupPath:  cfg.BackupPath(),
		IDColumn:    cfg.IDColumn,
		DateColumn:  cfg.DateColumn,
		Start:       start.Format(stamp.DateLayout),
		Periods:     cfg.Periods,
	}, nil
}

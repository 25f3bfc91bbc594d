package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults reproduce the behaviour of the one-off script this tool replaces.
const (
	DefaultDatasetPath  = "./InsightMCP/Data/results.csv"
	DefaultBackupSuffix = ".backup"
	DefaultIDColumn     = "CaseNumber"
	DefaultDateColumn   = "Date"
	DefaultStart        = "2023-01-01"
	DefaultPeriods      = 24
)

// Config represents the casedate configuration.
type Config struct {
	DatasetPath  string `yaml:"dataset_path"`
	BackupSuffix string `yaml:"backup_suffix"`
	IDColumn     string `yaml:"id_column"`
	DateColumn   string `yaml:"date_column"`
	Start        string `yaml:"start"`   // YYYY-MM-DD or YYYY-MM
	Periods      int    `yaml:"periods"` // number of month-starts in the window
	LedgerPath   string `yaml:"ledger_path,omitempty"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		DatasetPath:  DefaultDatasetPath,
		BackupSuffix: DefaultBackupSuffix,
		IDColumn:     DefaultIDColumn,
		DateColumn:   DefaultDateColumn,
		Start:        DefaultStart,
		Periods:      DefaultPeriods,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// Keys absent from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Encode writes cfg as YAML to w.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// Validate checks the configuration for values no run could succeed with.
func (c *Config) Validate() error {
	var errs []error
	if c.DatasetPath == "" {
		errs = append(errs, errors.New("dataset path must not be empty"))
	}
	if c.BackupSuffix == "" {
		errs = append(errs, errors.New("backup suffix must not be empty"))
	}
	if c.IDColumn == "" {
		errs = append(errs, errors.New("identifier column must not be empty"))
	}
	if c.DateColumn == "" {
		errs = append(errs, errors.New("date column must not be empty"))
	}
	if c.Periods < 1 {
		errs = append(errs, fmt.Errorf("periods must be at least 1, got %d", c.Periods))
	}
	if _, err := c.StartTime(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// BackupPath returns the sibling path the backup lives at.
func (c *Config) BackupPath() string {
	return c.DatasetPath + c.BackupSuffix
}

// StartTime parses Start as either a full date or a year-month.
func (c *Config) StartTime() (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, c.Start); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("start %q is not YYYY-MM-DD or YYYY-MM", c.Start)
}

// DefaultLedgerPath returns ~/.casedate/ledger.db.
func DefaultLedgerPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".casedate", "ledger.db"), nil
}

// ResolveLedgerPath returns LedgerPath, falling back to DefaultLedgerPath.
func (c *Config) ResolveLedgerPath() (string, error) {
	if c.LedgerPath != "" {
		return c.LedgerPath, nil
	}
	return DefaultLedgerPath()
}

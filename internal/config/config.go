// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/coinscan/internal/classify"
)

// Config is the environment-driven process configuration. A .env file in
// the working directory is honored through the autoload import in main.
type Config struct {
	// SnapshotURL selects the HTTP snapshot backend when set; otherwise the
	// local capture device is used.
	SnapshotURL string `env:"COINSCAN_SNAPSHOT_URL"`

	// Device is the local capture device index.
	Device int `env:"COINSCAN_DEVICE" envDefault:"0"`

	// HoldDevice keeps the device handle open between scans instead of
	// releasing it after each capture.
	HoldDevice bool `env:"COINSCAN_HOLD_DEVICE" envDefault:"false"`

	// Resolution names a capture preset: small, scan, or large. Empty
	// defers to the persisted webcam_size preference.
	Resolution string `env:"COINSCAN_RESOLUTION"`

	// ScanTimeout bounds one full scan pass.
	ScanTimeout time.Duration `env:"COINSCAN_SCAN_TIMEOUT" envDefault:"5s"`

	// RulesPath points at a YAML denomination table. Empty means the
	// built-in Euro table.
	RulesPath string `env:"COINSCAN_RULES"`

	// CentreOnly restricts classification to the central crop of the frame.
	CentreOnly bool `env:"COINSCAN_CENTRE_ONLY" envDefault:"false"`

	// Language overrides the persisted language preference when set.
	Language string `env:"COINSCAN_LANG"`

	// LogLevel selects log verbosity: debug, info, warn, or error.
	LogLevel string `env:"COINSCAN_LOG_LEVEL" envDefault:"info"`
}

// New parses the configuration from the environment.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// LoadRules resolves the denomination table: the YAML document at RulesPath
// when one is configured, the built-in Euro table otherwise. The table is
// validated either way.
func (c *Config) LoadRules() (classify.Table, error) {
	if c.RulesPath == "" {
		return classify.DefaultEuroTable(), nil
	}

	raw, err := os.ReadFile(c.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var table classify.Table
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", c.RulesPath, err)
	}
	return table, nil
}

// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Ledger   LedgerConfig   `toml:"ledger"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	TimeLimit *int    `toml:"time"`
	Words     *int    `toml:"words"`
	LineWidth *int    `toml:"width"`
	WordList  *string `toml:"wordlist"`
}

// LedgerConfig maps ledger-related settings. Durations use Go syntax ("30s").
type LedgerConfig struct {
	Backend        *string `toml:"backend"`
	NodeURL        *string `toml:"node-url"`
	Network        *string `toml:"network"`
	ExplorerURL    *string `toml:"explorer-url"`
	PackageID      *string `toml:"package-id"`
	GasBudget      *int64  `toml:"gas-budget"`
	CLIPath        *string `toml:"cli"`
	ConfirmTimeout *string `toml:"confirm-timeout"`
	PollInterval   *string `toml:"poll-interval"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

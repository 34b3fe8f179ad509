// Package config holds ccview configuration and the model pricing table.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all ccview configuration.
type Config struct {
	General GeneralConfig    `toml:"general"`
	Budget  BudgetConfig     `toml:"budget"`
	Pricing PricingOverrides `toml:"pricing"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultDays      int    `toml:"default_days"`
	IncludeSubagents bool   `toml:"include_subagents"`
	DataDir          string `toml:"data_dir,omitempty"`
	PageSize         int    `toml:"page_size"`
	AgentPageSize    int    `toml:"agent_page_size"`
}

// BudgetConfig holds budget tracking settings.
type BudgetConfig struct {
	MonthlyUSD *float64 `toml:"monthly_usd,omitempty"`
}

// PricingOverrides allows user-defined pricing for specific models.
type PricingOverrides struct {
	Overrides map[string]ModelRatesOverride `toml:"overrides,omitempty"`
}

// ModelRatesOverride holds per-model pricing overrides.
type ModelRatesOverride struct {
	InputPerMTok      *float64 `toml:"input_per_mtok,omitempty"`
	OutputPerMTok     *float64 `toml:"output_per_mtok,omitempty"`
	CacheWritePerMTok *float64 `toml:"cache_write_per_mtok,omitempty"`
	CacheReadPerMTok  *float64 `toml:"cache_read_per_mtok,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays:      30,
			IncludeSubagents: true,
			PageSize:         20,
			AgentPageSize:    10,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccview")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.General.PageSize <= 0 {
		cfg.General.PageSize = 20
	}
	if cfg.General.AgentPageSize <= 0 {
		cfg.General.AgentPageSize = 10
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Resolver builds the pricing resolver for this configuration, applying any
// user overrides to the built-in table.
func (c Config) Resolver() PriceResolver {
	return NewTableResolverWithOverrides(c.Pricing.Overrides)
}

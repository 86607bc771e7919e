// Package config provides configuration management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"cleaning-cost/core/output"
	"cleaning-cost/core/pricing"
	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
	"cleaning-cost/internal/logging"
)

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates nesting levels: CLEANING_COST_PRICING__RATE_TABLE=bracket.
const EnvPrefix = "CLEANING_COST_"

// FileName is the config file looked up in the working directory.
const FileName = "cleaning-cost.yaml"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `koanf:"version" yaml:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `koanf:"pricing" yaml:"pricing"`

	// Rooms contains room list behaviour
	Rooms RoomsConfig `koanf:"rooms" yaml:"rooms"`

	// Output contains output configuration
	Output OutputConfig `koanf:"output" yaml:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `koanf:"server" yaml:"server"`

	// Logging contains logging configuration
	Logging logging.Config `koanf:"logging" yaml:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// RateTable selects the rate table strategy (formula, bracket)
	RateTable string `koanf:"rate_table" yaml:"rate_table"`

	// Currency is the display currency
	Currency types.Currency `koanf:"currency" yaml:"currency"`
}

// RoomsConfig controls room regeneration
type RoomsConfig struct {
	// PreserveFloors keeps floor selections when room counts change
	PreserveFloors bool `koanf:"preserve_floors" yaml:"preserve_floors"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `koanf:"default_format" yaml:"default_format"`

	// ShowBreakdown prints the adjustment lines under the totals
	ShowBreakdown bool `koanf:"show_breakdown" yaml:"show_breakdown"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Addr               string `koanf:"addr" yaml:"addr"`
	ReadTimeoutSeconds int    `koanf:"read_timeout_seconds" yaml:"read_timeout_seconds"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"rate-table":      "pricing.rate_table",
	"currency":        "pricing.currency",
	"preserve-floors": "rooms.preserve_floors",
	"format":          "output.default_format",
	"breakdown":       "output.show_breakdown",
	"addr":            "server.addr",
	"log-level":       "logging.level",
	"log-format":      "logging.format",
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			RateTable: pricing.TableFormula,
			Currency:  types.CurrencyUSD,
		},
		Output: OutputConfig{
			DefaultFormat: string(output.FormatCLI),
			ShowBreakdown: true,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			ReadTimeoutSeconds: 10,
		},
		Logging: logging.DefaultConfig(),
	}
}

func defaultMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"version":                     d.Version,
		"pricing.rate_table":          d.Pricing.RateTable,
		"pricing.currency":            string(d.Pricing.Currency),
		"rooms.preserve_floors":       d.Rooms.PreserveFloors,
		"output.default_format":       d.Output.DefaultFormat,
		"output.show_breakdown":       d.Output.ShowBreakdown,
		"server.addr":                 d.Server.Addr,
		"server.read_timeout_seconds": d.Server.ReadTimeoutSeconds,
		"logging.level":               d.Logging.Level,
		"logging.format":              d.Logging.Format,
		"logging.output":              d.Logging.Output,
		"logging.development":         d.Logging.Development,
	}
}

// findConfigFile returns the explicit path, ./cleaning-cost.yaml or
// ~/.cleaning-cost.yaml, whichever exists first.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, "."+FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load loads configuration. Precedence (highest to lowest):
// changed flags > environment > config file > defaults.
// A missing config file is not an error.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to load defaults", err)
	}

	if used := findConfigFile(path); used != "" {
		if _, err := os.Stat(used); err == nil {
			if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
				return nil, errors.Wrap(errors.TypeConfig, fmt.Sprintf("error reading config file %s", used), err)
			}
		} else {
			logging.Debug("config file not found, using defaults", zap.String("path", used))
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to load env vars", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(errors.TypeConfig, "failed to load flags", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "unable to decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings. The rate table name is
// normalised to lower case.
func (c *Config) Validate() error {
	c.Pricing.RateTable = strings.ToLower(strings.TrimSpace(c.Pricing.RateTable))
	if !slices.Contains(pricing.TableNames(), c.Pricing.RateTable) {
		return errors.Config(fmt.Sprintf("unknown rate table %q (allowed: %s)",
			c.Pricing.RateTable, strings.Join(pricing.TableNames(), ", ")))
	}
	if _, ok := output.Get(output.Format(c.Output.DefaultFormat)); !ok {
		return errors.Config(fmt.Sprintf("unknown output format %q", c.Output.DefaultFormat))
	}
	if c.Server.ReadTimeoutSeconds < 0 {
		return errors.Config("server.read_timeout_seconds must not be negative")
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

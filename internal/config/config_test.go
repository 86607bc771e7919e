package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("rate-table", "formula", "")
	fs.String("format", "cli", "")
	fs.Bool("preserve-floors", false, "")
	fs.String("unrelated", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, "formula", cfg.Pricing.RateTable)
	assert.Equal(t, types.CurrencyUSD, cfg.Pricing.Currency)
	assert.False(t, cfg.Rooms.PreserveFloors)
	assert.Equal(t, "cli", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Output.ShowBreakdown)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
pricing:
  rate_table: bracket
rooms:
  preserve_floors: true
output:
  default_format: json
server:
  addr: ":9090"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "bracket", cfg.Pricing.RateTable)
	assert.True(t, cfg.Rooms.PreserveFloors)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Server.ReadTimeoutSeconds)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `
pricing:
  rate_table: bracket
output:
  default_format: json
`)

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("CLEANING_COST_PRICING__RATE_TABLE", "formula")
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "formula", cfg.Pricing.RateTable)
		assert.Equal(t, "json", cfg.Output.DefaultFormat)
	})

	t.Run("changed flags beat env", func(t *testing.T) {
		t.Setenv("CLEANING_COST_OUTPUT__DEFAULT_FORMAT", "yaml")
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--format", "markdown", "--unrelated", "x"}))

		cfg, err := Load(path, fs)
		require.NoError(t, err)
		assert.Equal(t, "markdown", cfg.Output.DefaultFormat)
		assert.Equal(t, "bracket", cfg.Pricing.RateTable, "unchanged flag must not override the file")
	})

	t.Run("bool flag", func(t *testing.T) {
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--preserve-floors"}))

		cfg, err := Load(path, fs)
		require.NoError(t, err)
		assert.True(t, cfg.Rooms.PreserveFloors)
	})
}

func TestLoadNormalisesRateTable(t *testing.T) {
	t.Run("env", func(t *testing.T) {
		t.Setenv("CLEANING_COST_PRICING__RATE_TABLE", "Bracket")
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		require.NoError(t, err)
		assert.Equal(t, "bracket", cfg.Pricing.RateTable)
	})

	t.Run("flag", func(t *testing.T) {
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--rate-table", " FORMULA "}))
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), fs)
		require.NoError(t, err)
		assert.Equal(t, "formula", cfg.Pricing.RateTable)
	})
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"rate table", "pricing:\n  rate_table: magic\n"},
		{"output format", "output:\n  default_format: html\n"},
		{"read timeout", "server:\n  read_timeout_seconds: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig), "got %v", err)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "pricing: [unclosed"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestGlobalConfig(t *testing.T) {
	original := Get()
	t.Cleanup(func() { Set(original) })

	cfg := Default()
	cfg.Pricing.RateTable = "bracket"
	Set(cfg)
	assert.Equal(t, "bracket", Get().Pricing.RateTable)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/trademaster/internal/market"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 10000.0, cfg.Session.StartingCash)
	assert.Equal(t, "1s", cfg.Session.TickInterval)
	assert.Equal(t, "bullish", cfg.Session.InitialTrend)
	assert.Len(t, cfg.Instruments, 6)
	assert.Equal(t, 185.2, cfg.Instruments[0].Price)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return Default() }

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"zero cash", func(c *Config) { c.Session.StartingCash = 0 }, "session.starting_cash must be positive"},
		{"bad interval", func(c *Config) { c.Session.TickInterval = "soon" }, "session.tick_interval"},
		{"negative interval", func(c *Config) { c.Session.TickInterval = "-1s" }, "session.tick_interval must be positive"},
		{"bad trend", func(c *Config) { c.Session.InitialTrend = "sideways" }, "session.initial_trend"},
		{"probability above one", func(c *Config) { c.Session.InsightProbability = 1.5 }, "session.insight_probability"},
		{"negative history", func(c *Config) { c.Session.HistorySize = -1 }, "session.history_size"},
		{"no instruments", func(c *Config) { c.Instruments = nil }, "at least one instrument"},
		{"missing symbol", func(c *Config) { c.Instruments[0].Symbol = "" }, "instruments[0].symbol is required"},
		{"duplicate symbol", func(c *Config) { c.Instruments[1].Symbol = "AAPL" }, "duplicate instrument symbol: AAPL"},
		{"price below floor", func(c *Config) { c.Instruments[2].Price = 0.5 }, "instruments[2].price must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"game.yaml", "game.yml", "game.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := Default()
			cfg.Session.Seed = 42
			cfg.Session.InitialTrend = "bearish"

			require.NoError(t, cfg.SaveToFile(path))

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session: [\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "parse config")

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  starting_cash: 0\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"STARTING_CASH", "25000")
	t.Setenv(EnvPrefix+"TICK_INTERVAL", "250ms")
	t.Setenv(EnvPrefix+"SEED", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25000.0, cfg.Session.StartingCash)
	assert.Equal(t, "250ms", cfg.Session.TickInterval)
	assert.Equal(t, int64(7), cfg.Session.Seed)
}

func TestLoadReadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvPrefix+"INITIAL_TREND=bearish\n"), 0644))
	t.Cleanup(func() { os.Unsetenv(EnvPrefix + "INITIAL_TREND") })

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "bearish", cfg.Session.InitialTrend)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"SEED", "abc")
	_, err := Load("")
	assert.ErrorContains(t, err, EnvPrefix+"SEED")
}

func TestGameConfig(t *testing.T) {
	cfg := Default()
	cfg.Session.TickInterval = "250ms"
	cfg.Session.InitialTrend = "bearish"
	cfg.Session.StartingCash = 5000
	cfg.Instruments = []InstrumentConfig{{Symbol: "ACME", Price: 12.345}}

	gc, err := cfg.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, gc.TickInterval)
	assert.Equal(t, market.TrendBearish, gc.InitialTrend)
	assert.True(t, decimal.NewFromInt(5000).Equal(gc.StartingCash))
	require.Len(t, gc.Instruments, 1)
	assert.Equal(t, "ACME", gc.Instruments[0].Name, "name defaults to symbol")
	assert.True(t, decimal.RequireFromString("12.35").Equal(gc.Instruments[0].Price))

	cfg.Instruments = nil
	_, err = cfg.GameConfig()
	assert.Error(t, err)
}

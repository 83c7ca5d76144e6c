// Package config loads game settings from YAML or JSON files and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/market"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRADEMASTER_"

// Config represents the complete session configuration.
type Config struct {
	Session     SessionConfig      `json:"session" yaml:"session"`
	Instruments []InstrumentConfig `json:"instruments" yaml:"instruments"`
}

// SessionConfig contains the simulation parameters.
type SessionConfig struct {
	StartingCash       float64 `json:"starting_cash" yaml:"starting_cash"`
	TickInterval       string  `json:"tick_interval" yaml:"tick_interval"` // e.g. "1s", "500ms"
	InitialTrend       string  `json:"initial_trend" yaml:"initial_trend"` // "bullish" or "bearish"
	HistorySize        int     `json:"history_size" yaml:"history_size"`
	InsightFeedSize    int     `json:"insight_feed_size" yaml:"insight_feed_size"`
	InsightProbability float64 `json:"insight_probability" yaml:"insight_probability"`
	Seed               int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// InstrumentConfig describes one tradable instrument.
type InstrumentConfig struct {
	Symbol string  `json:"symbol" yaml:"symbol"`
	Name   string  `json:"name" yaml:"name"`
	Price  float64 `json:"price" yaml:"price"`
}

// Default returns a configuration matching game.DefaultConfig.
func Default() *Config {
	def := game.DefaultConfig()

	cfg := &Config{
		Session: SessionConfig{
			StartingCash:       def.StartingCash.InexactFloat64(),
			TickInterval:       def.TickInterval.String(),
			InitialTrend:       def.InitialTrend.String(),
			HistorySize:        def.HistorySize,
			InsightFeedSize:    def.InsightFeedSize,
			InsightProbability: def.InsightProbability,
		},
	}
	for _, in := range def.Instruments {
		cfg.Instruments = append(cfg.Instruments, InstrumentConfig{
			Symbol: string(in.Symbol),
			Name:   in.Name,
			Price:  in.Price.InexactFloat64(),
		})
	}
	return cfg
}

// Load reads path (or the defaults when path is empty), then applies
// environment overrides, including any found in envFiles.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	// missing .env files are not an error
	_ = godotenv.Load(envFiles...)

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides session settings from TRADEMASTER_* variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("STARTING_CASH"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sSTARTING_CASH: %w", EnvPrefix, err)
		}
		c.Session.StartingCash = f
	}
	if v, ok := lookup("TICK_INTERVAL"); ok {
		c.Session.TickInterval = v
	}
	if v, ok := lookup("INITIAL_TREND"); ok {
		c.Session.InitialTrend = v
	}
	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Session.Seed = n
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Session.StartingCash <= 0 {
		return fmt.Errorf("session.starting_cash must be positive")
	}
	if c.Session.TickInterval != "" {
		d, err := time.ParseDuration(c.Session.TickInterval)
		if err != nil {
			return fmt.Errorf("session.tick_interval: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("session.tick_interval must be positive")
		}
	}
	if _, err := parseTrend(c.Session.InitialTrend); err != nil {
		return err
	}
	if c.Session.HistorySize < 0 {
		return fmt.Errorf("session.history_size must not be negative")
	}
	if c.Session.InsightFeedSize < 0 {
		return fmt.Errorf("session.insight_feed_size must not be negative")
	}
	if c.Session.InsightProbability < 0 || c.Session.InsightProbability > 1 {
		return fmt.Errorf("session.insight_probability must be between 0 and 1")
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	seen := make(map[string]bool, len(c.Instruments))
	for i, in := range c.Instruments {
		if in.Symbol == "" {
			return fmt.Errorf("instruments[%d].symbol is required", i)
		}
		if seen[in.Symbol] {
			return fmt.Errorf("duplicate instrument symbol: %s", in.Symbol)
		}
		seen[in.Symbol] = true
		if in.Price < 1 {
			return fmt.Errorf("instruments[%d].price must be at least 1", i)
		}
	}
	return nil
}

func parseTrend(s string) (market.Trend, error) {
	switch strings.ToLower(s) {
	case "", "bullish":
		return market.TrendBullish, nil
	case "bearish":
		return market.TrendBearish, nil
	default:
		return 0, fmt.Errorf("session.initial_trend must be 'bullish' or 'bearish'")
	}
}

// GameConfig converts c into a game.Config.
func (c *Config) GameConfig() (game.Config, error) {
	if err := c.Validate(); err != nil {
		return game.Config{}, err
	}

	cfg := game.DefaultConfig()
	cfg.StartingCash = decimal.NewFromFloat(c.Session.StartingCash).Round(2)
	if c.Session.TickInterval != "" {
		cfg.TickInterval, _ = time.ParseDuration(c.Session.TickInterval)
	}
	cfg.InitialTrend, _ = parseTrend(c.Session.InitialTrend)
	if c.Session.HistorySize > 0 {
		cfg.HistorySize = c.Session.HistorySize
	}
	if c.Session.InsightFeedSize > 0 {
		cfg.InsightFeedSize = c.Session.InsightFeedSize
	}
	if c.Session.InsightProbability > 0 {
		cfg.InsightProbability = c.Session.InsightProbability
	}
	cfg.Seed = c.Session.Seed

	cfg.Instruments = make([]market.Instrument, 0, len(c.Instruments))
	for _, in := range c.Instruments {
		name := in.Name
		if name == "" {
			name = in.Symbol
		}
		cfg.Instruments = append(cfg.Instruments, market.NewInstrument(market.Symbol(in.Symbol), name, in.Price))
	}
	return cfg, nil
}

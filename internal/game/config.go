package game

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/insight"
	insightview "github.com/zappabad/trademaster/internal/insight/view"
	"github.com/zappabad/trademaster/internal/market"
	marketview "github.com/zappabad/trademaster/internal/market/view"
	"github.com/zappabad/trademaster/internal/portfolio"
)

// Config holds configuration for a game session.
type Config struct {
	// Instruments is the stock universe, in display order.
	Instruments []market.Instrument
	// StartingCash is the initial balance and the reference for profit/loss.
	StartingCash decimal.Decimal
	// TickInterval is the period of the market simulation.
	TickInterval time.Duration
	// InitialTrend is the trend the market opens with.
	InitialTrend market.Trend
	// HistorySize is the number of price samples kept per instrument.
	HistorySize int
	// InsightFeedSize is the number of insights kept.
	InsightFeedSize int
	// InsightProbability is the per-tick chance of a new insight.
	InsightProbability float64
	// Seed seeds the random source. Zero means seed from the clock.
	Seed int64
	// CommandBuffer is the size of the inbound command queue.
	CommandBuffer int
	// EventBuffer is the size of the events channel.
	EventBuffer int
	// DropEvents determines whether the events channel drops on overflow.
	DropEvents bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Instruments:        market.DefaultInstruments(),
		StartingCash:       portfolio.DefaultStartingCash,
		TickInterval:       time.Second,
		InitialTrend:       market.TrendBullish,
		HistorySize:        marketview.DefaultHistorySize,
		InsightFeedSize:    insightview.DefaultFeedSize,
		InsightProbability: insight.DefaultProbability,
		CommandBuffer:      64,
		EventBuffer:        256,
		DropEvents:         true,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if len(c.Instruments) == 0 {
		c.Instruments = def.Instruments
	}
	if !c.StartingCash.IsPositive() {
		c.StartingCash = def.StartingCash
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.HistorySize <= 0 {
		c.HistorySize = def.HistorySize
	}
	if c.InsightFeedSize <= 0 {
		c.InsightFeedSize = def.InsightFeedSize
	}
	if c.InsightProbability <= 0 {
		c.InsightProbability = def.InsightProbability
	}
	if c.CommandBuffer <= 0 {
		c.CommandBuffer = def.CommandBuffer
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = def.EventBuffer
	}
	return c
}

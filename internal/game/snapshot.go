package game

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/achievement"
	"github.com/zappabad/trademaster/internal/insight"
	"github.com/zappabad/trademaster/internal/market"
	marketview "github.com/zappabad/trademaster/internal/market/view"
	"github.com/zappabad/trademaster/internal/portfolio"
)

// Snapshot is a read-only view of a session at one instant.
// Callers must not modify the maps or slices it holds.
type Snapshot struct {
	Tick        int64
	Time        time.Time
	Trend       market.Trend
	Instruments []market.Instrument
	Selected    market.Symbol
	History     map[market.Symbol][]marketview.PriceSample
	Insights    []insight.Insight

	Portfolio         portfolio.State
	StartingCash      decimal.Decimal
	TotalValue        decimal.Decimal
	ProfitLoss        decimal.Decimal
	ProfitLossPercent decimal.Decimal

	// Notification is the active achievement banner, nil once expired.
	Notification *achievement.Notification
}

// SelectedInstrument returns the instrument currently selected.
func (s Snapshot) SelectedInstrument() (market.Instrument, bool) {
	return market.Find(s.Instruments, s.Selected)
}

// CanBuy reports whether buying shares of symbol at its current price would be accepted.
func (s Snapshot) CanBuy(symbol market.Symbol, shares int64) bool {
	return s.check(portfolio.Buy, symbol, shares) == nil
}

// CanSell reports whether selling shares of symbol would be accepted.
func (s Snapshot) CanSell(symbol market.Symbol, shares int64) bool {
	return s.check(portfolio.Sell, symbol, shares) == nil
}

func (s Snapshot) check(dir portfolio.Direction, symbol market.Symbol, shares int64) error {
	in, ok := market.Find(s.Instruments, symbol)
	if !ok {
		return ErrUnknownInstrument
	}
	return portfolio.Check(s.Portfolio, dir, symbol, shares, in.Price)
}

// Level is the player's level derived from experience.
func (s Snapshot) Level() int64 {
	return s.Portfolio.Level()
}

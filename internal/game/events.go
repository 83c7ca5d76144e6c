package game

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/portfolio"
)

// Event is published on Game.Events.
type Event interface {
	isEvent()
}

// TickEvent follows every market step.
type TickEvent struct {
	Tick       int64
	Time       time.Time
	TotalValue decimal.Decimal
}

func (TickEvent) isEvent() {}

// TradeEvent follows an accepted trade.
type TradeEvent struct {
	Transaction portfolio.Transaction
	TotalValue  decimal.Decimal
}

func (TradeEvent) isEvent() {}

// AchievementEvent is published once per unlocked achievement.
type AchievementEvent struct {
	Name string
	Time time.Time
}

func (AchievementEvent) isEvent() {}

// InsightEvent carries a newly generated insight.
type InsightEvent struct {
	Text string
	Time time.Time
}

func (InsightEvent) isEvent() {}

// TrendEvent is published when the market trend flips.
type TrendEvent struct {
	Trend market.Trend
	Time  time.Time
}

func (TrendEvent) isEvent() {}

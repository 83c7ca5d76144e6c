package view

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/market"
)

// PriceSample is one recorded price for an instrument.
type PriceSample struct {
	Symbol market.Symbol
	Price  decimal.Decimal
	Time   time.Time
}

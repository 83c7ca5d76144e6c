package market

import (
	"github.com/shopspring/decimal"
)

// Symbol uniquely identifies an instrument.
type Symbol string

// Instrument is a simulated tradable security.
type Instrument struct {
	Symbol    Symbol
	Name      string
	Price     decimal.Decimal
	BasePrice decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ChangePercent returns the move from the base price in percent, rounded to 2 places.
func (i Instrument) ChangePercent() decimal.Decimal {
	if i.BasePrice.IsZero() {
		return decimal.Zero
	}
	return i.Price.Sub(i.BasePrice).Div(i.BasePrice).Mul(hundred).Round(2)
}

// Trend is the global bias applied to every price walk.
type Trend uint8

const (
	TrendBullish Trend = iota
	TrendBearish
)

func (t Trend) String() string {
	switch t {
	case TrendBullish:
		return "bullish"
	case TrendBearish:
		return "bearish"
	default:
		return "unknown"
	}
}

// Opposite returns the other trend.
func (t Trend) Opposite() Trend {
	if t == TrendBullish {
		return TrendBearish
	}
	return TrendBullish
}

// Bias is the per-tick drift added to the random walk.
func (t Trend) Bias() float64 {
	if t == TrendBullish {
		return trendBias
	}
	return -trendBias
}

// DefaultInstruments returns the stock universe the game starts with.
func DefaultInstruments() []Instrument {
	return []Instrument{
		NewInstrument("AAPL", "Apple Inc.", 185.20),
		NewInstrument("GOOGL", "Alphabet Inc.", 142.80),
		NewInstrument("MSFT", "Microsoft Corp.", 378.50),
		NewInstrument("TSLA", "Tesla Inc.", 195.60),
		NewInstrument("AMZN", "Amazon.com Inc.", 145.30),
		NewInstrument("NVDA", "NVIDIA Corp.", 720.90),
	}
}

// NewInstrument creates an instrument whose base price equals its starting price.
func NewInstrument(symbol Symbol, name string, price float64) Instrument {
	p := decimal.NewFromFloat(price).Round(2)
	return Instrument{Symbol: symbol, Name: name, Price: p, BasePrice: p}
}

// Find returns the instrument with the given symbol.
func Find(instruments []Instrument, symbol Symbol) (Instrument, bool) {
	for _, in := range instruments {
		if in.Symbol == symbol {
			return in, true
		}
	}
	return Instrument{}, false
}

// Prices indexes current prices by symbol.
func Prices(instruments []Instrument) map[Symbol]decimal.Decimal {
	out := make(map[Symbol]decimal.Decimal, len(instruments))
	for _, in := range instruments {
		out[in.Symbol] = in.Price
	}
	return out
}

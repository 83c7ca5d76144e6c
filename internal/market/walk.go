package market

import (
	"github.com/shopspring/decimal"
)

const (
	// volatility is the width of the uniform draw, centered on zero.
	volatility = 0.02
	trendBias  = 0.001

	// TrendFlipProbability is the per-tick chance that the trend reverses.
	TrendFlipProbability = 0.05
)

// MinPrice is the floor applied after every step.
var MinPrice = decimal.NewFromInt(1)

var one = decimal.NewFromInt(1)

// Rand is the random source used by the simulator. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Tick moves every instrument one step along a trend-biased random walk.
// The input slice is left untouched.
func Tick(instruments []Instrument, trend Trend, rng Rand) []Instrument {
	out := make([]Instrument, len(instruments))
	for i, in := range instruments {
		in.Price = Step(in.Price, trend, rng.Float64())
		out[i] = in
	}
	return out
}

// Step applies one walk step to price given a uniform draw u in [0,1).
func Step(price decimal.Decimal, trend Trend, u float64) decimal.Decimal {
	delta := decimal.NewFromFloat((u-0.5)*volatility + trend.Bias())
	next := price.Mul(one.Add(delta))
	return decimal.Max(next, MinPrice).Round(2)
}

// FlipTrend reverses the trend with TrendFlipProbability.
func FlipTrend(trend Trend, rng Rand) Trend {
	if rng.Float64() < TrendFlipProbability {
		return trend.Opposite()
	}
	return trend
}

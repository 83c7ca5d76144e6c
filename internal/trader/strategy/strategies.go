package strategy

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/portfolio"
	"github.com/zappabad/trademaster/internal/trader"
)

// RandomStrategy trades a random instrument on a fraction of ticks. It
// only proposes trades the portfolio can cover.
type RandomStrategy struct {
	rng       market.Rand
	activity  float64
	maxShares int64
}

// NewRandomStrategy creates a RandomStrategy acting with probability
// activity per tick and trading at most maxShares at a time.
func NewRandomStrategy(rng market.Rand, activity float64, maxShares int64) *RandomStrategy {
	if maxShares < 1 {
		maxShares = 1
	}
	return &RandomStrategy{rng: rng, activity: activity, maxShares: maxShares}
}

// Step implements Strategy.
func (s *RandomStrategy) Step(ctx context.Context, snap game.Snapshot) []trader.Intent {
	if len(snap.Instruments) == 0 || s.rng.Float64() >= s.activity {
		return nil
	}

	in := snap.Instruments[s.rng.Intn(len(snap.Instruments))]
	held := snap.Portfolio.Shares(in.Symbol)

	if held > 0 && s.rng.Float64() < 0.5 {
		return []trader.Intent{{
			Direction: portfolio.Sell,
			Symbol:    in.Symbol,
			Shares:    1 + int64(s.rng.Intn(int(held))),
		}}
	}

	affordable := snap.Portfolio.Cash.Div(in.Price).Floor().IntPart()
	if affordable < 1 {
		return nil
	}
	shares := 1 + int64(s.rng.Intn(int(min(affordable, s.maxShares))))
	return []trader.Intent{{Direction: portfolio.Buy, Symbol: in.Symbol, Shares: shares}}
}

// MomentumStrategy buys instruments whose price rose over the lookback
// window and closes positions in instruments that fell.
type MomentumStrategy struct {
	lookback int
	shares   int64
}

// NewMomentumStrategy creates a MomentumStrategy comparing the latest
// price with the one lookback samples earlier.
func NewMomentumStrategy(lookback int, shares int64) *MomentumStrategy {
	if lookback < 1 {
		lookback = 1
	}
	if shares < 1 {
		shares = 1
	}
	return &MomentumStrategy{lookback: lookback, shares: shares}
}

// Step implements Strategy.
func (s *MomentumStrategy) Step(ctx context.Context, snap game.Snapshot) []trader.Intent {
	var intents []trader.Intent
	cash := snap.Portfolio.Cash

	for _, in := range snap.Instruments {
		samples := snap.History[in.Symbol]
		if len(samples) <= s.lookback {
			continue
		}
		last := samples[len(samples)-1].Price
		prev := samples[len(samples)-1-s.lookback].Price

		switch {
		case last.GreaterThan(prev):
			cost := in.Price.Mul(decimal.NewFromInt(s.shares))
			if cost.GreaterThan(cash) {
				continue
			}
			cash = cash.Sub(cost)
			intents = append(intents, trader.Intent{Direction: portfolio.Buy, Symbol: in.Symbol, Shares: s.shares})
		case last.LessThan(prev):
			if held := snap.Portfolio.Shares(in.Symbol); held > 0 {
				intents = append(intents, trader.Intent{Direction: portfolio.Sell, Symbol: in.Symbol, Shares: held})
			}
		}
	}
	return intents
}

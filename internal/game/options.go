package game

import (
	"math/rand"
	"time"

	"github.com/zappabad/trademaster/internal/market"
)

// Option customizes a Game.
type Option func(*Game)

// WithRand injects the random source driving prices, insights and trend flips.
func WithRand(rng market.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithClock injects the wall clock used for timestamps and notification expiry.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithManualTicks disables the ticker; the market only moves on Advance.
func WithManualTicks() Option {
	return func(g *Game) { g.manual = true }
}

func defaultRand(seed int64) market.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

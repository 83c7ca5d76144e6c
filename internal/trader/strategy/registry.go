package strategy

import (
	"fmt"

	"github.com/zappabad/trademaster/internal/market"
)

// Names of the built-in strategies.
const (
	Random   = "random"
	Momentum = "momentum"
)

// Names lists the strategies New accepts.
func Names() []string {
	return []string{Random, Momentum}
}

// New builds a strategy by name with its default tuning.
func New(name string, rng market.Rand) (Strategy, error) {
	switch name {
	case Random:
		return NewRandomStrategy(rng, 0.3, 10), nil
	case Momentum:
		return NewMomentumStrategy(3, 5), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, Names())
	}
}

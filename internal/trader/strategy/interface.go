package strategy

import (
	"context"

	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/trader"
)

// Strategy decides what to trade given the current session state.
type Strategy interface {
	// Step is called once per market tick.
	Step(ctx context.Context, snap game.Snapshot) []trader.Intent
}

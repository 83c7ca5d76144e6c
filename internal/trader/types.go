package trader

import (
	"fmt"
	"time"

	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/portfolio"
)

// Intent is a trade a strategy wants to make at the current price.
type Intent struct {
	Direction portfolio.Direction
	Symbol    market.Symbol
	Shares    int64
}

func (i Intent) String() string {
	return fmt.Sprintf("%s %d %s", i.Direction, i.Shares, i.Symbol)
}

// EventType indicates the type of trader event.
type EventType int

const (
	EventTraded EventType = iota
	EventRejected
	EventError
)

// Event reports what happened to one intent.
type Event struct {
	Time    time.Time
	Type    EventType
	Intent  Intent
	Message string // rejection reason or error text
}

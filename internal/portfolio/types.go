package portfolio

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/market"
)

const (
	// MaxTransactions is the length of the transaction log.
	MaxTransactions = 10

	BuyExperience      = 10
	SellExperience     = 15
	ExperiencePerLevel = 100
)

// DefaultStartingCash is the balance a new session starts with.
var DefaultStartingCash = decimal.NewFromInt(10000)

// Direction is the side of a trade.
type Direction uint8

const (
	Buy Direction = iota
	Sell
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection accepts "buy"/"sell" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "B":
		return Buy, nil
	case "SELL", "S":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade direction %q", s)
	}
}

// Transaction is an executed trade. Immutable once recorded.
type Transaction struct {
	ID        string
	Direction Direction
	Symbol    market.Symbol
	Shares    int64
	Price     decimal.Decimal
	Time      time.Time
}

// Amount is the cash that changed hands.
func (t Transaction) Amount() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Shares))
}

// State is the player's portfolio. Values are never mutated in place;
// every change produces a new State.
type State struct {
	Cash         decimal.Decimal
	Holdings     map[market.Symbol]int64
	Transactions []Transaction // newest first
	Experience   int64
	// TradeCount counts every accepted trade, unlike Transactions which is capped.
	TradeCount   int64
	Achievements []string
}

// NewState returns an empty portfolio holding cash.
func NewState(cash decimal.Decimal) State {
	return State{
		Cash:     cash,
		Holdings: map[market.Symbol]int64{},
	}
}

// Shares returns the number of shares held of symbol.
func (s State) Shares(symbol market.Symbol) int64 {
	return s.Holdings[symbol]
}

// Level is one plus every full ExperiencePerLevel earned.
func (s State) Level() int64 {
	return s.Experience/ExperiencePerLevel + 1
}

// HasAchievement reports whether name is unlocked.
func (s State) HasAchievement(name string) bool {
	for _, a := range s.Achievements {
		if a == name {
			return true
		}
	}
	return false
}

// WithAchievements returns a copy of s with names appended, skipping any already unlocked.
func (s State) WithAchievements(names ...string) State {
	if len(names) == 0 {
		return s
	}
	out := s
	out.Achievements = append([]string(nil), s.Achievements...)
	for _, n := range names {
		if !out.HasAchievement(n) {
			out.Achievements = append(out.Achievements, n)
		}
	}
	return out
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Holdings = make(map[market.Symbol]int64, len(s.Holdings))
	for k, v := range s.Holdings {
		out.Holdings[k] = v
	}
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	out.Achievements = append([]string(nil), s.Achievements...)
	return out
}

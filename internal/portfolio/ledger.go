package portfolio

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/id"
	"github.com/zappabad/trademaster/internal/market"
)

var (
	ErrInvalidTrade       = errors.New("invalid trade")
	ErrInsufficientCash   = errors.New("insufficient cash")
	ErrInsufficientShares = errors.New("insufficient shares")
)

// Check reports why a trade would be rejected, or nil if it would be accepted.
func Check(s State, dir Direction, symbol market.Symbol, shares int64, price decimal.Decimal) error {
	if shares <= 0 || !price.IsPositive() {
		return ErrInvalidTrade
	}
	switch dir {
	case Buy:
		if s.Cash.LessThan(price.Mul(decimal.NewFromInt(shares))) {
			return ErrInsufficientCash
		}
	case Sell:
		if s.Holdings[symbol] < shares {
			return ErrInsufficientShares
		}
	default:
		return ErrInvalidTrade
	}
	return nil
}

// ExecuteTrade applies a trade of shares of symbol at price.
// It returns the new state and true when accepted. A rejected trade returns
// s itself and false. s is never modified.
func ExecuteTrade(s State, dir Direction, symbol market.Symbol, shares int64, price decimal.Decimal, at time.Time) (State, bool) {
	if Check(s, dir, symbol, shares, price) != nil {
		return s, false
	}

	amount := price.Mul(decimal.NewFromInt(shares))
	held := s.Holdings[symbol]

	out := s.Clone()
	switch dir {
	case Buy:
		out.Cash = s.Cash.Sub(amount)
		out.Holdings[symbol] = held + shares
		out.Experience += BuyExperience
	case Sell:
		out.Cash = s.Cash.Add(amount)
		if held == shares {
			delete(out.Holdings, symbol)
		} else {
			out.Holdings[symbol] = held - shares
		}
		out.Experience += SellExperience
	}
	out.TradeCount++

	tx := Transaction{
		ID:        id.New(at),
		Direction: dir,
		Symbol:    symbol,
		Shares:    shares,
		Price:     price,
		Time:      at,
	}
	out.Transactions = prepend(s.Transactions, tx, MaxTransactions)
	return out, true
}

func prepend(log []Transaction, tx Transaction, limit int) []Transaction {
	n := len(log) + 1
	if n > limit {
		n = limit
	}
	out := make([]Transaction, n)
	out[0] = tx
	copy(out[1:], log)
	return out
}

// Valuate returns cash plus the market value of every holding.
// Holdings without a price count as zero.
func Valuate(s State, prices map[market.Symbol]decimal.Decimal) decimal.Decimal {
	total := s.Cash
	for sym, shares := range s.Holdings {
		price, ok := prices[sym]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(shares)))
	}
	return total
}

// ProfitLoss returns the gain against the starting balance and the same gain in percent.
func ProfitLoss(total, starting decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	pl := total.Sub(starting)
	if starting.IsZero() {
		return pl, decimal.Zero
	}
	return pl, pl.Div(starting).Mul(decimal.NewFromInt(100)).Round(2)
}

package portfolio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/trademaster/internal/market"
)

var t0 = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestBuyThenSellScenario(t *testing.T) {
	s := NewState(DefaultStartingCash)

	s, ok := ExecuteTrade(s, Buy, "AAPL", 10, d("185.20"), t0)
	require.True(t, ok)
	assertDec(t, "8148.00", s.Cash)
	assert.Equal(t, int64(10), s.Shares("AAPL"))
	assert.Equal(t, int64(10), s.Experience)
	require.Len(t, s.Transactions, 1)
	assert.Equal(t, Buy, s.Transactions[0].Direction)
	assertDec(t, "185.20", s.Transactions[0].Price)
	assert.NotEmpty(t, s.Transactions[0].ID)

	s, ok = ExecuteTrade(s, Sell, "AAPL", 10, d("300.00"), t0.Add(time.Second))
	require.True(t, ok)
	assertDec(t, "11148.00", s.Cash)
	assert.Equal(t, int64(0), s.Shares("AAPL"))
	assert.Equal(t, int64(25), s.Experience)
	require.Len(t, s.Transactions, 2)
	assert.Equal(t, Sell, s.Transactions[0].Direction, "newest first")
	assert.Equal(t, Buy, s.Transactions[1].Direction)
	assert.Equal(t, int64(2), s.TradeCount)
}

func TestBuyRejectedWhenCashShort(t *testing.T) {
	s := NewState(d("100"))
	before := s.Clone()

	got, ok := ExecuteTrade(s, Buy, "NVDA", 1, d("720.90"), t0)
	assert.False(t, ok)
	assert.Equal(t, before, got)
	assert.Equal(t, before, s)
}

func TestBuyAcceptedAtExactCash(t *testing.T) {
	s := NewState(d("370.40"))

	got, ok := ExecuteTrade(s, Buy, "AAPL", 2, d("185.20"), t0)
	require.True(t, ok)
	assert.True(t, got.Cash.IsZero())
}

func TestSellRejectedWhenSharesShort(t *testing.T) {
	s, ok := ExecuteTrade(NewState(DefaultStartingCash), Buy, "MSFT", 3, d("378.50"), t0)
	require.True(t, ok)
	before := s.Clone()

	got, ok := ExecuteTrade(s, Sell, "MSFT", 4, d("378.50"), t0)
	assert.False(t, ok)
	assert.Equal(t, before, got)

	got, ok = ExecuteTrade(s, Sell, "TSLA", 1, d("195.60"), t0)
	assert.False(t, ok)
	assert.Equal(t, before, got)
}

func TestInvalidTradesRejected(t *testing.T) {
	s := NewState(DefaultStartingCash)

	tests := []struct {
		name   string
		dir    Direction
		shares int64
		price  decimal.Decimal
	}{
		{"zero shares", Buy, 0, d("10")},
		{"negative shares", Sell, -5, d("10")},
		{"zero price", Buy, 1, decimal.Zero},
		{"unknown direction", Direction(7), 1, d("10")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExecuteTrade(s, tt.dir, "AAPL", tt.shares, tt.price, t0)
			assert.False(t, ok)
			assert.Equal(t, s, got)
		})
	}
}

func TestPartialSellKeepsRemainder(t *testing.T) {
	s, _ := ExecuteTrade(NewState(DefaultStartingCash), Buy, "AMZN", 5, d("145.30"), t0)
	s, ok := ExecuteTrade(s, Sell, "AMZN", 2, d("150.00"), t0)
	require.True(t, ok)
	assert.Equal(t, int64(3), s.Shares("AMZN"))
	assertDec(t, "9573.50", s.Cash)
}

func TestTransactionLogIsCapped(t *testing.T) {
	s := NewState(DefaultStartingCash)
	for i := 0; i < 15; i++ {
		var ok bool
		s, ok = ExecuteTrade(s, Buy, "GOOGL", int64(i+1), d("1.00"), t0.Add(time.Duration(i)*time.Second))
		require.True(t, ok)
		assert.LessOrEqual(t, len(s.Transactions), MaxTransactions)
	}

	require.Len(t, s.Transactions, MaxTransactions)
	assert.Equal(t, int64(15), s.Transactions[0].Shares, "newest kept")
	assert.Equal(t, int64(6), s.Transactions[MaxTransactions-1].Shares, "oldest five dropped")
	assert.Equal(t, int64(15), s.TradeCount)
}

func TestExecuteTradeDoesNotAliasInput(t *testing.T) {
	s, _ := ExecuteTrade(NewState(DefaultStartingCash), Buy, "AAPL", 1, d("10"), t0)
	snapshot := s.Clone()

	_, ok := ExecuteTrade(s, Buy, "AAPL", 1, d("10"), t0)
	require.True(t, ok)
	assert.Equal(t, snapshot, s)
}

func TestValuate(t *testing.T) {
	s := NewState(d("1000"))
	s.Holdings["AAPL"] = 10
	s.Holdings["GONE"] = 100

	prices := map[market.Symbol]decimal.Decimal{"AAPL": d("185.20")}
	assertDec(t, "2852.00", Valuate(s, prices))
}

func TestValuateHasNoDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	instruments := market.DefaultInstruments()
	s := NewState(DefaultStartingCash)

	for i := 0; i < 500; i++ {
		in := instruments[rng.Intn(len(instruments))]
		dir := Buy
		if rng.Intn(2) == 1 {
			dir = Sell
		}
		s, _ = ExecuteTrade(s, dir, in.Symbol, int64(rng.Intn(5)+1), in.Price, t0)
		instruments = market.Tick(instruments, market.TrendBullish, rng)

		want := s.Cash
		for _, in := range instruments {
			want = want.Add(in.Price.Mul(decimal.NewFromInt(s.Shares(in.Symbol))))
		}
		got := Valuate(s, market.Prices(instruments))
		require.True(t, want.Equal(got), "step %d: want %s got %s", i, want, got)
		require.False(t, s.Cash.IsNegative())
	}
}

func TestProfitLoss(t *testing.T) {
	pl, pct := ProfitLoss(d("11148"), DefaultStartingCash)
	assertDec(t, "1148", pl)
	assertDec(t, "11.48", pct)

	pl, pct = ProfitLoss(d("9500"), DefaultStartingCash)
	assertDec(t, "-500", pl)
	assertDec(t, "-5", pct)

	_, pct = ProfitLoss(d("10"), decimal.Zero)
	assert.True(t, pct.IsZero())
}

func TestLevel(t *testing.T) {
	s := NewState(DefaultStartingCash)
	assert.Equal(t, int64(1), s.Level())
	s.Experience = 99
	assert.Equal(t, int64(1), s.Level())
	s.Experience = 100
	assert.Equal(t, int64(2), s.Level())
	s.Experience = 250
	assert.Equal(t, int64(3), s.Level())
}

func TestWithAchievements(t *testing.T) {
	s := NewState(DefaultStartingCash)
	s2 := s.WithAchievements("First Profit", "First Profit", "High Roller")

	assert.Empty(t, s.Achievements)
	assert.Equal(t, []string{"First Profit", "High Roller"}, s2.Achievements)
	assert.True(t, s2.HasAchievement("High Roller"))
}

func TestParseDirection(t *testing.T) {
	dir, err := ParseDirection("buy")
	require.NoError(t, err)
	assert.Equal(t, Buy, dir)

	dir, err = ParseDirection(" SELL ")
	require.NoError(t, err)
	assert.Equal(t, Sell, dir)

	_, err = ParseDirection("hold")
	assert.Error(t, err)
}

func TestCheckReasons(t *testing.T) {
	s := NewState(d("500"))
	s.Holdings["AAPL"] = 2

	assert.NoError(t, Check(s, Buy, "AAPL", 2, d("250")))
	assert.ErrorIs(t, Check(s, Buy, "AAPL", 3, d("250")), ErrInsufficientCash)
	assert.NoError(t, Check(s, Sell, "AAPL", 2, d("250")))
	assert.ErrorIs(t, Check(s, Sell, "AAPL", 3, d("250")), ErrInsufficientShares)
	assert.ErrorIs(t, Check(s, Sell, "MSFT", 1, d("250")), ErrInsufficientShares)
	assert.ErrorIs(t, Check(s, Buy, "AAPL", 0, d("250")), ErrInvalidTrade)
}

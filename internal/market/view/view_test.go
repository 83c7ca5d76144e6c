package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/trademaster/internal/market"
)

func TestPriceHistoryDropsOldest(t *testing.T) {
	h := NewPriceHistory(DefaultHistorySize)
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		h.Record("AAPL", decimal.NewFromInt(int64(100+i)), t0.Add(time.Duration(i)*time.Second))
		assert.LessOrEqual(t, h.Len("AAPL"), DefaultHistorySize)
	}

	samples := h.Samples("AAPL")
	require.Len(t, samples, DefaultHistorySize)
	// first five were dropped
	assert.True(t, decimal.NewFromInt(105).Equal(samples[0].Price))
	assert.True(t, decimal.NewFromInt(124).Equal(samples[len(samples)-1].Price))
	for i := 1; i < len(samples); i++ {
		assert.True(t, samples[i].Time.After(samples[i-1].Time))
	}
}

func TestPriceHistorySymbolsAreIndependent(t *testing.T) {
	h := NewPriceHistory(3)
	now := time.Now()

	for i := 0; i < 5; i++ {
		h.Record("AAPL", decimal.NewFromInt(int64(i)), now)
	}
	h.Record("MSFT", decimal.NewFromInt(1), now)

	assert.Equal(t, 3, h.Len("AAPL"))
	assert.Equal(t, 1, h.Len("MSFT"))
	assert.Equal(t, 0, h.Len("TSLA"))
	assert.Nil(t, h.Samples("TSLA"))
}

func TestPriceHistoryAllIsRestartable(t *testing.T) {
	h := NewPriceHistory(5)
	now := time.Now()
	for i := 1; i <= 3; i++ {
		h.Record("NVDA", decimal.NewFromInt(int64(i)), now)
	}

	seq := h.All("NVDA")
	var first, second []string
	for s := range seq {
		first = append(first, s.Price.String())
	}
	for s := range seq {
		second = append(second, s.Price.String())
	}
	assert.Equal(t, []string{"1", "2", "3"}, first)
	assert.Equal(t, first, second)

	// early exit
	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestPriceHistorySamplesAreCopies(t *testing.T) {
	h := NewPriceHistory(2)
	h.Record("AAPL", decimal.NewFromInt(1), time.Now())

	s := h.Samples("AAPL")
	s[0].Price = decimal.NewFromInt(99)

	assert.True(t, decimal.NewFromInt(1).Equal(h.Samples("AAPL")[0].Price))
}

func TestRecordAllAndSnapshot(t *testing.T) {
	h := NewPriceHistory(0)
	h.RecordAll(market.DefaultInstruments(), time.Now())

	snap := h.Snapshot()
	assert.Len(t, snap, 6)
	for sym, samples := range snap {
		require.Len(t, samples, 1, sym)
		assert.Equal(t, sym, samples[0].Symbol)
	}
}

package view

import (
	"iter"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/market"
)

// DefaultHistorySize is the number of samples kept per symbol.
const DefaultHistorySize = 20

// ring is a bounded buffer of samples that overwrites the oldest entry.
type ring struct {
	buf   []PriceSample
	start int
	count int
}

func (r *ring) push(s PriceSample) {
	size := len(r.buf)
	if r.count < size {
		r.buf[(r.start+r.count)%size] = s
		r.count++
		return
	}
	// overwrite oldest
	r.buf[r.start] = s
	r.start = (r.start + 1) % size
}

func (r *ring) slice() []PriceSample {
	out := make([]PriceSample, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// PriceHistory keeps the most recent samples for each symbol.
type PriceHistory struct {
	mu       sync.RWMutex
	capacity int
	bySymbol map[market.Symbol]*ring
}

// NewPriceHistory creates a PriceHistory keeping capacity samples per symbol.
func NewPriceHistory(capacity int) *PriceHistory {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &PriceHistory{
		capacity: capacity,
		bySymbol: make(map[market.Symbol]*ring),
	}
}

// Record appends a sample for symbol, dropping the oldest one when full.
func (h *PriceHistory) Record(symbol market.Symbol, price decimal.Decimal, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.bySymbol[symbol]
	if !ok {
		r = &ring{buf: make([]PriceSample, h.capacity)}
		h.bySymbol[symbol] = r
	}
	r.push(PriceSample{Symbol: symbol, Price: price, Time: at})
}

// RecordAll records the current price of every instrument at the same instant.
func (h *PriceHistory) RecordAll(instruments []market.Instrument, at time.Time) {
	for _, in := range instruments {
		h.Record(in.Symbol, in.Price, at)
	}
}

// Samples returns the samples for symbol, oldest first.
// Returns a copy (not internal references).
func (h *PriceHistory) Samples(symbol market.Symbol) []PriceSample {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.bySymbol[symbol]
	if !ok {
		return nil
	}
	return r.slice()
}

// All returns a sequence over the samples for symbol as of the call.
// The sequence can be ranged over any number of times.
func (h *PriceHistory) All(symbol market.Symbol) iter.Seq[PriceSample] {
	samples := h.Samples(symbol)
	return func(yield func(PriceSample) bool) {
		for _, s := range samples {
			if !yield(s) {
				return
			}
		}
	}
}

// Len returns the number of samples held for symbol.
func (h *PriceHistory) Len(symbol market.Symbol) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if r, ok := h.bySymbol[symbol]; ok {
		return r.count
	}
	return 0
}

// Snapshot copies the history of every symbol.
func (h *PriceHistory) Snapshot() map[market.Symbol][]PriceSample {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[market.Symbol][]PriceSample, len(h.bySymbol))
	for sym, r := range h.bySymbol {
		out[sym] = r.slice()
	}
	return out
}

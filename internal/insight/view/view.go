package view

import (
	"sync"

	"github.com/zappabad/trademaster/internal/insight"
)

// DefaultFeedSize is the number of insights kept.
const DefaultFeedSize = 5

// Feed maintains a bounded ring buffer of insights.
type Feed struct {
	mu    sync.RWMutex
	buf   []insight.Insight
	size  int
	start int
	count int
}

// NewFeed creates a new Feed with the given capacity.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultFeedSize
	}
	return &Feed{
		buf:  make([]insight.Insight, capacity),
		size: capacity,
	}
}

// Add pushes an insight, dropping the oldest when full.
func (f *Feed) Add(item insight.Insight) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.count < f.size {
		f.buf[(f.start+f.count)%f.size] = item
		f.count++
		return
	}
	// overwrite oldest
	f.buf[f.start] = item
	f.start = (f.start + 1) % f.size
}

// Latest returns all insights newest first.
// Returns a copy (not internal references).
func (f *Feed) Latest() []insight.Insight {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.count == 0 {
		return nil
	}
	out := make([]insight.Insight, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.buf[(f.start+f.count-1-i)%f.size]
	}
	return out
}

// Count returns the number of insights in the feed.
func (f *Feed) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.count
}

package insight

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.n % n }

func TestMaybeGenerate(t *testing.T) {
	g := NewGenerator()

	text, ok := g.MaybeGenerate(fixedRand{f: 0.05, n: 2})
	require.True(t, ok)
	assert.Equal(t, Catalog[2], text)

	_, ok = g.MaybeGenerate(fixedRand{f: 0.10})
	assert.False(t, ok)

	_, ok = g.MaybeGenerate(fixedRand{f: 0.9})
	assert.False(t, ok)
}

func TestMaybeGenerateRate(t *testing.T) {
	g := NewGenerator()
	rng := rand.New(rand.NewSource(11))

	hits := 0
	counts := map[string]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		if text, ok := g.MaybeGenerate(rng); ok {
			hits++
			counts[text]++
		}
	}

	assert.InDelta(t, 0.10, float64(hits)/n, 0.015)
	assert.Len(t, counts, len(Catalog), "every catalog entry drawn")
	for _, text := range Catalog {
		assert.Contains(t, counts, text)
	}
}

func TestEmptyCatalog(t *testing.T) {
	g := NewGeneratorWith(nil, 1)
	_, ok := g.MaybeGenerate(fixedRand{})
	assert.False(t, ok)
}

func TestNextStampsTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	g := NewGeneratorWith([]string{"only"}, 1)

	in, ok := g.Next(fixedRand{}, now)
	require.True(t, ok)
	assert.Equal(t, Insight{Text: "only", Time: now}, in)
}

package insight

import "time"

// DefaultProbability is the per-tick chance of producing an insight.
const DefaultProbability = 0.10

// Catalog is the fixed set of messages insights are drawn from.
var Catalog = []string{
	"📈 Strong bullish momentum detected in tech sector",
	"⚡ High volatility expected in next 2 hours",
	"🎯 Support level identified at current price range",
	"🔥 Volume surge indicates potential breakout",
	"📊 Technical indicators suggest trend reversal",
	"💡 Market sentiment turning positive",
	"🚀 Breaking resistance levels detected",
	"⚠️ Profit-taking activity observed",
}

// Rand is the random source used by the generator. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Generator draws insights from a catalog.
type Generator struct {
	catalog     []string
	probability float64
}

// NewGenerator returns a Generator using Catalog and DefaultProbability.
func NewGenerator() *Generator {
	return &Generator{catalog: Catalog, probability: DefaultProbability}
}

// NewGeneratorWith returns a Generator over a custom catalog.
func NewGeneratorWith(catalog []string, probability float64) *Generator {
	return &Generator{catalog: catalog, probability: probability}
}

// MaybeGenerate returns a message with the generator's probability.
func (g *Generator) MaybeGenerate(rng Rand) (string, bool) {
	if len(g.catalog) == 0 || rng.Float64() >= g.probability {
		return "", false
	}
	return g.catalog[rng.Intn(len(g.catalog))], true
}

// Next is MaybeGenerate stamped with now.
func (g *Generator) Next(rng Rand, now time.Time) (Insight, bool) {
	text, ok := g.MaybeGenerate(rng)
	if !ok {
		return Insight{}, false
	}
	return Insight{Text: text, Time: now}, true
}

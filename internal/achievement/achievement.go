// Package achievement unlocks named milestones from portfolio progress.
package achievement

import (
	"github.com/shopspring/decimal"
)

const (
	FirstProfit  = "First Profit"
	ActiveTrader = "Active Trader"
	HighRoller   = "High Roller"
)

// Progress is what the rules look at.
type Progress struct {
	TotalValue decimal.Decimal
	TradeCount int64
}

// Rule unlocks Name once Met returns true.
type Rule struct {
	Name string
	Met  func(Progress) bool
}

// DefaultRules is the rule table, in the order unlocks are reported.
var DefaultRules = []Rule{
	{Name: FirstProfit, Met: valueAtLeast(decimal.NewFromInt(12000))},
	{Name: ActiveTrader, Met: func(p Progress) bool { return p.TradeCount >= 10 }},
	{Name: HighRoller, Met: valueAtLeast(decimal.NewFromInt(15000))},
}

func valueAtLeast(threshold decimal.Decimal) func(Progress) bool {
	return func(p Progress) bool {
		return p.TotalValue.GreaterThanOrEqual(threshold)
	}
}

// Evaluator checks a fixed rule table.
type Evaluator struct {
	rules []Rule
}

// NewEvaluator returns an Evaluator over rules, or DefaultRules when none are given.
func NewEvaluator(rules ...Rule) *Evaluator {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Evaluator{rules: rules}
}

// Evaluate returns the names whose rule is met and which are not in unlocked.
func (e *Evaluator) Evaluate(unlocked []string, p Progress) []string {
	seen := make(map[string]struct{}, len(unlocked))
	for _, name := range unlocked {
		seen[name] = struct{}{}
	}

	var out []string
	for _, r := range e.rules {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		if r.Met(p) {
			out = append(out, r.Name)
			seen[r.Name] = struct{}{}
		}
	}
	return out
}

// Evaluate runs DefaultRules.
func Evaluate(unlocked []string, p Progress) []string {
	return NewEvaluator().Evaluate(unlocked, p)
}

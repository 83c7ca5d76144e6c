package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the display currency of the game.
const Currency = money.USD

// Money formats an amount as dollars, e.g. "$10,000.00".
func Money(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	factor := decimal.New(1, int32(cur.Fraction))
	return money.New(amount.Mul(factor).Round(0).IntPart(), Currency).Display()
}

// SignedMoney is Money with an explicit "+" on gains.
func SignedMoney(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + Money(amount)
	}
	return Money(amount)
}

// Percent formats a percentage with two decimals and an explicit sign on gains.
func Percent(p decimal.Decimal) string {
	s := p.StringFixed(2) + "%"
	if p.IsPositive() {
		return "+" + s
	}
	return s
}

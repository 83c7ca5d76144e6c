package achievement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func progress(value int64, trades int64) Progress {
	return Progress{TotalValue: decimal.NewFromInt(value), TradeCount: trades}
}

func TestEvaluateRules(t *testing.T) {
	tests := []struct {
		name     string
		unlocked []string
		p        Progress
		want     []string
	}{
		{"nothing yet", nil, progress(10000, 0), nil},
		{"first profit at threshold", nil, progress(12000, 0), []string{FirstProfit}},
		{"just below", nil, Progress{TotalValue: decimal.RequireFromString("11999.99")}, nil},
		{"active trader", nil, progress(10000, 10), []string{ActiveTrader}},
		{"all at once in rule order", nil, progress(15000, 12), []string{FirstProfit, ActiveTrader, HighRoller}},
		{"already unlocked skipped", []string{FirstProfit}, progress(15000, 0), []string{HighRoller}},
		{"all unlocked", []string{HighRoller, ActiveTrader, FirstProfit}, progress(20000, 50), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.unlocked, tt.p))
		})
	}
}

func TestFirstProfitFiresOnce(t *testing.T) {
	var unlocked []string
	fired := 0

	for tick := 0; tick < 50; tick++ {
		p := progress(12000+int64(tick), 0)
		for _, name := range Evaluate(unlocked, p) {
			if name == FirstProfit {
				fired++
			}
			unlocked = append(unlocked, name)
		}
	}

	assert.Equal(t, 1, fired)
	assert.Equal(t, []string{FirstProfit}, unlocked)
}

func TestCustomRules(t *testing.T) {
	e := NewEvaluator(Rule{Name: "Whale", Met: func(p Progress) bool { return p.TradeCount > 100 }})

	assert.Nil(t, e.Evaluate(nil, progress(1e6, 100)))
	assert.Equal(t, []string{"Whale"}, e.Evaluate(nil, progress(0, 101)))
}

func TestNotificationExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	n := NewNotification(HighRoller, now)

	assert.True(t, n.Active(now))
	assert.True(t, n.Active(now.Add(2999*time.Millisecond)))
	assert.False(t, n.Active(now.Add(NotificationTTL)))

	var none *Notification
	assert.False(t, none.Active(now))
}

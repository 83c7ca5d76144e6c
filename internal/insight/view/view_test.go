package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/trademaster/internal/insight"
)

func TestFeedNewestFirstAndCapped(t *testing.T) {
	f := NewFeed(DefaultFeedSize)
	assert.Nil(t, f.Latest())

	for i := 1; i <= 8; i++ {
		f.Add(insight.Insight{Text: fmt.Sprintf("m%d", i)})
		assert.LessOrEqual(t, f.Count(), DefaultFeedSize)
	}

	got := f.Latest()
	require.Len(t, got, DefaultFeedSize)
	texts := make([]string, len(got))
	for i, in := range got {
		texts[i] = in.Text
	}
	assert.Equal(t, []string{"m8", "m7", "m6", "m5", "m4"}, texts)
}

func TestFeedPartial(t *testing.T) {
	f := NewFeed(0)
	f.Add(insight.Insight{Text: "a"})
	f.Add(insight.Insight{Text: "b"})

	got := f.Latest()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Text)
	assert.Equal(t, "a", got[1].Text)
}

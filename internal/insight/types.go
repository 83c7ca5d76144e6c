package insight

import "time"

// Insight is a canned market commentary line shown in the feed.
type Insight struct {
	Text string
	Time time.Time
}

package achievement

import "time"

// NotificationTTL is how long an unlock banner stays visible.
const NotificationTTL = 3 * time.Second

// Notification announces an unlocked achievement until Expires.
type Notification struct {
	Name    string
	Expires time.Time
}

// NewNotification creates a notification for name shown from now.
func NewNotification(name string, now time.Time) *Notification {
	return &Notification{Name: name, Expires: now.Add(NotificationTTL)}
}

// Active reports whether n should still be shown at now.
func (n *Notification) Active(now time.Time) bool {
	return n != nil && now.Before(n.Expires)
}

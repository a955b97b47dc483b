package domain

import "time"

// DeviceToken is a push-notification destination. At most one live token is
// kept per user; the dispatcher deletes it when the push service reports the
// token permanently invalid, and the external re-engagement flow registers a
// fresh one.
type DeviceToken struct {
	UserID    string
	Token     string
	UpdatedAt time.Time
}

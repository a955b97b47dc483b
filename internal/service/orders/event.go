package orders

import (
	"context"
	"time"
)

// Event types fired once per record-creation event, independent of the
// notification outcome.
const (
	EventOrderCreated        = "order_created"
	EventMessageCreated      = "message_created"
	EventAdminMessageCreated = "admin_message_created"
)

// Event is a single record-creation event.
type Event struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id,omitempty"`
	MessageID   string    `json:"message_id,omitempty"`
	RecipientID string    `json:"recipient_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventSink receives creation events for asynchronous processing. Emit must
// not block the request path and must never fail it.
type EventSink interface {
	Emit(ctx context.Context, e Event)
}

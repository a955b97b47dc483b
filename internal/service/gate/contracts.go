package gate

import (
	"context"

	"transportmarket/internal/domain"
	"transportmarket/internal/service/orders"
)

// orderGetter loads the order an offer targets.
type orderGetter interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
}

// profileGetter loads the courier's verification subset.
type profileGetter interface {
	Get(ctx context.Context, id string) (*domain.CourierProfile, error)
}

// messageStore defines the message log operations the gate needs.
type messageStore interface {
	Get(ctx context.Context, id string) (*domain.Message, error)
	Insert(ctx context.Context, m *domain.Message) error
	DistinctCourierSenders(ctx context.Context, orderID string) (int, error)
	CourierHasMessaged(ctx context.Context, orderID, courierID string) (bool, error)
	MarkRead(ctx context.Context, id, readerID string) (bool, error)
}

// eventSink receives creation events for the notification trigger surface.
type eventSink interface {
	Emit(ctx context.Context, e orders.Event)
}

package orders

import (
	"context"
	"time"

	"transportmarket/internal/domain"
)

// orderRepository defines storage operations required by the lifecycle service.
type orderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
	Assign(ctx context.Context, id, courierID string) (bool, error)
	Archive(ctx context.Context, id string, at time.Time) (bool, error)
}

// orderGetter is the read-only subset needed by the event processor.
type orderGetter interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
}

// messageGetter loads a message for notification routing.
type messageGetter interface {
	Get(ctx context.Context, id string) (*domain.Message, error)
}

// MatcherPort abstracts the coverage matcher for the event processor.
type MatcherPort interface {
	Match(ctx context.Context, o domain.Order) ([]string, error)
}

// NotifierPort abstracts the push dispatcher for the event processor.
type NotifierPort interface {
	Notify(ctx context.Context, recipientID, title, body string, data map[string]string)
	Fanout(ctx context.Context, recipientIDs []string, title, body string, data map[string]string)
}

package dispatch

import (
	"context"

	"transportmarket/internal/domain"
	"transportmarket/internal/gateway/push"
)

// tokenRepository defines the push token operations required by the
// dispatcher: read the live token and delete it on permanent failure.
type tokenRepository interface {
	Get(ctx context.Context, userID string) (*domain.DeviceToken, error)
	Delete(ctx context.Context, userID string) error
}

// pusher abstracts the push-delivery service.
type pusher interface {
	Send(ctx context.Context, n push.Notification) error
}

// counter abstracts a metrics counter.
type counter interface {
	Inc()
}

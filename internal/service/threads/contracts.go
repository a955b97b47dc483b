package threads

import (
	"context"

	"transportmarket/internal/domain"
)

// messageLister defines the message log read the aggregator projects from.
type messageLister interface {
	ListByParticipant(ctx context.Context, userID string) ([]domain.Message, error)
}

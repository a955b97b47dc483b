package kafka

import (
	"strings"
	"time"

	"transportmarket/internal/service/orders"
)

// EventDTO is a data transfer object for orders.Event
type EventDTO struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id,omitempty"`
	MessageID   string    `json:"message_id,omitempty"`
	RecipientID string    `json:"recipient_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromDomain converts orders.Event to EventDTO
func FromDomain(e orders.Event) EventDTO {
	return EventDTO{
		Type:        e.Type,
		OrderID:     e.OrderID,
		MessageID:   e.MessageID,
		RecipientID: e.RecipientID,
		CreatedAt:   e.CreatedAt,
	}
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		Type:        strings.ToLower(strings.TrimSpace(dto.Type)),
		OrderID:     strings.TrimSpace(dto.OrderID),
		MessageID:   strings.TrimSpace(dto.MessageID),
		RecipientID: strings.TrimSpace(dto.RecipientID),
		CreatedAt:   dto.CreatedAt,
	}
}

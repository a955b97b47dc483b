package handlers

import (
	"time"

	"transportmarket/internal/domain"
	"transportmarket/internal/service/threads"
)

type createOrderRequest struct {
	ServiceType   string              `json:"service_type"`
	Pickup        locationDTO         `json:"pickup"`
	Delivery      locationDTO         `json:"delivery"`
	OffererPolicy string              `json:"offerer_policy,omitempty"`
	CapPolicy     string              `json:"cap_policy,omitempty"`
	Details       domain.OrderDetails `json:"details,omitempty"`
}

type locationDTO struct {
	Country string `json:"country"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

func (l locationDTO) toDomain() domain.Location {
	return domain.Location{Country: l.Country, Region: l.Region, City: l.City}
}

func locationFromDomain(l domain.Location) locationDTO {
	return locationDTO{Country: l.Country, Region: l.Region, City: l.City}
}

type orderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	ClientID      string              `json:"client_id"`
	ServiceType   string              `json:"service_type"`
	Pickup        locationDTO         `json:"pickup"`
	Delivery      locationDTO         `json:"delivery"`
	Status        string              `json:"status"`
	CourierID     *string             `json:"courier_id,omitempty"`
	OffererPolicy string              `json:"offerer_policy"`
	CapPolicy     string              `json:"cap_policy"`
	Details       domain.OrderDetails `json:"details"`
	Archived      bool                `json:"archived"`
	CreatedAt     time.Time           `json:"created_at"`
}

func orderToResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		Number:        o.Number,
		ClientID:      o.ClientID,
		ServiceType:   string(o.ServiceType),
		Pickup:        locationFromDomain(o.Pickup),
		Delivery:      locationFromDomain(o.Delivery),
		Status:        string(o.Status),
		CourierID:     o.CourierID,
		OffererPolicy: string(o.OffererPolicy),
		CapPolicy:     string(o.CapPolicy),
		Details:       o.Details,
		Archived:      o.Archived,
		CreatedAt:     o.CreatedAt,
	}
}

type transitionRequest struct {
	Status string `json:"status"`
}

type assignRequest struct {
	CourierID string `json:"courier_id"`
}

// postMessageRequest covers both sides of a conversation: couriers send only
// the text, clients also name the courier whose thread they reply in.
type postMessageRequest struct {
	Text      string `json:"text"`
	CourierID string `json:"courier_id,omitempty"`
}

type adminMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id,omitempty"`
	SenderID   string    `json:"sender_id"`
	SenderRole string    `json:"sender_role"`
	Body       string    `json:"body"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func messageToResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:         m.ID,
		OrderID:    m.OrderID,
		SenderID:   m.SenderID,
		SenderRole: string(m.SenderRole),
		Body:       m.Body,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

type threadResponse struct {
	CounterpartyID string    `json:"counterparty_id"`
	LastMessage    string    `json:"last_message"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    int       `json:"unread_count"`
}

func threadsToResponse(in []threads.Summary) []threadResponse {
	out := make([]threadResponse, 0, len(in))
	for _, s := range in {
		out = append(out, threadResponse{
			CounterpartyID: s.CounterpartyID,
			LastMessage:    s.LastMessage,
			LastMessageAt:  s.LastMessageAt,
			UnreadCount:    s.UnreadCount,
		})
	}
	return out
}

type zoneRequest struct {
	Country string `json:"country"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

type zoneResponse struct {
	ID      int64  `json:"id"`
	Country string `json:"country"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

type pushTokenRequest struct {
	Token string `json:"token"`
}

package domain

import "time"

// SenderRole identifies which side of a conversation sent a message.
type SenderRole string

// List of possible sender roles
const (
	RoleClient  SenderRole = "client"
	RoleCourier SenderRole = "courier"
	RoleAdmin   SenderRole = "admin"
)

// Valid checks if the SenderRole is valid
func (r SenderRole) Valid() bool {
	switch r {
	case RoleClient, RoleCourier, RoleAdmin:
		return true
	default:
		return false
	}
}

// Message is one unit of communication on an order between a client and a
// courier, or on the administrative channel between a user and the platform
// operator (empty OrderID). The only mutation after creation is flipping
// Read, and only by the non-sender party.
type Message struct {
	ID         string
	OrderID    string
	ClientID   string
	CourierID  string
	SenderID   string
	SenderRole SenderRole
	Body       string
	Read       bool
	CreatedAt  time.Time
}

// RecipientID returns the identity of the party the message is addressed to.
func (m Message) RecipientID() string {
	if m.SenderID == m.ClientID {
		return m.CourierID
	}
	return m.ClientID
}

// AddressedTo reports whether the message is addressed to userID.
func (m Message) AddressedTo(userID string) bool {
	return m.SenderID != userID && (m.ClientID == userID || m.CourierID == userID)
}

// CounterpartyFor returns the conversation counterparty relative to userID.
func (m Message) CounterpartyFor(userID string) string {
	if m.ClientID == userID {
		return m.CourierID
	}
	return m.ClientID
}

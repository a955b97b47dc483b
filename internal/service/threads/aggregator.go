package threads

import (
	"context"
	"sort"
	"time"
)

// PlatformCounterparty labels administrative-channel threads, which have no
// user on the other side.
const PlatformCounterparty = "platform"

// Summary is one conversation in a user's thread list.
type Summary struct {
	CounterpartyID string
	LastMessage    string
	LastMessageAt  time.Time
	UnreadCount    int
}

// Aggregator derives per-user conversation summaries from the flat message
// log. It is a pure read-side projection with no state of its own, always
// consistent with the log at read time.
type Aggregator struct {
	messages         messageLister
	operationTimeout time.Duration
}

// NewAggregator creates and configures an Aggregator.
func NewAggregator(m messageLister, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Aggregator{messages: m, operationTimeout: timeout}
}

// Summarize groups the user's messages by counterparty. Unread counts only
// messages addressed to the user; ordering is by last message time,
// descending.
func (a *Aggregator) Summarize(ctx context.Context, userID string) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, a.operationTimeout)
	defer cancel()

	msgs, err := a.messages.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	byCounterparty := make(map[string]*Summary)
	for _, m := range msgs {
		cp := m.CounterpartyFor(userID)
		if cp == "" {
			cp = PlatformCounterparty
		}

		s, ok := byCounterparty[cp]
		if !ok {
			s = &Summary{CounterpartyID: cp}
			byCounterparty[cp] = s
		}
		// the log arrives oldest first, so the last seen message wins
		if !m.CreatedAt.Before(s.LastMessageAt) {
			s.LastMessage = m.Body
			s.LastMessageAt = m.CreatedAt
		}
		if !m.Read && m.AddressedTo(userID) {
			s.UnreadCount++
		}
	}

	out := make([]Summary, 0, len(byCounterparty))
	for _, s := range byCounterparty {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

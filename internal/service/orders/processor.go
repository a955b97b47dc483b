package orders

import (
	"context"
	"fmt"

	"transportmarket/internal/logx"
)

// histogram abstracts a metrics histogram.
type histogram interface {
	Observe(float64)
}

// Processor reacts to record-creation events: a new order triggers the
// matcher and the notification fan-out, a new message triggers a single
// notification toward the non-sending party. Each event fires exactly once
// per creation, and notification failures never surface to the flow that
// created the record.
type Processor struct {
	orders   orderGetter
	messages messageGetter
	matcher  MatcherPort
	notifier NotifierPort
	logger   logx.Logger
	matched  histogram
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor. The matched histogram may be nil.
func NewProcessor(orders orderGetter, messages messageGetter, matcher MatcherPort, notifier NotifierPort, logger logx.Logger, matched histogram) *Processor {
	p := &Processor{
		orders:   orders,
		messages: messages,
		matcher:  matcher,
		notifier: notifier,
		logger:   logger,
		matched:  matched,
	}
	p.factory = newActionFactory(p.onOrderCreated, p.onMessageCreated, p.onAdminMessageCreated)
	return p
}

// Handle processes a single Event. Unknown event types are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Type)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onOrderCreated(ctx context.Context, e Event) error {
	o, err := p.orders.Get(ctx, e.OrderID)
	if err != nil {
		return fmt.Errorf("load order %q: %w", e.OrderID, err)
	}
	if o == nil {
		return nil
	}

	ids, err := p.matcher.Match(ctx, *o)
	if err != nil {
		// the pipeline is fire-and-forget: abort, do not retry
		return fmt.Errorf("match couriers for order %q: %w", e.OrderID, err)
	}
	if p.matched != nil {
		p.matched.Observe(float64(len(ids)))
	}

	p.logger.Info("order matched",
		logx.String("event", "order_matched"),
		logx.String("order_id", o.ID),
		logx.String("order_number", o.Number),
		logx.Int("couriers", len(ids)),
	)

	p.notifier.Fanout(ctx, ids,
		"New transport request",
		fmt.Sprintf("%s: %s to %s", o.ServiceType, o.Pickup.Country, o.Delivery.Country),
		map[string]string{
			"order_id":     o.ID,
			"order_number": o.Number,
			"service_type": string(o.ServiceType),
		},
	)
	return nil
}

func (p *Processor) onMessageCreated(ctx context.Context, e Event) error {
	m, err := p.messages.Get(ctx, e.MessageID)
	if err != nil {
		return fmt.Errorf("load message %q: %w", e.MessageID, err)
	}
	if m == nil {
		return nil
	}
	recipient := m.RecipientID()
	if recipient == "" {
		return nil
	}

	p.notifier.Notify(ctx, recipient,
		"New message",
		m.Body,
		map[string]string{
			"order_id":   m.OrderID,
			"message_id": m.ID,
			"sender_id":  m.SenderID,
		},
	)
	return nil
}

func (p *Processor) onAdminMessageCreated(ctx context.Context, e Event) error {
	m, err := p.messages.Get(ctx, e.MessageID)
	if err != nil {
		return fmt.Errorf("load admin message %q: %w", e.MessageID, err)
	}
	if m == nil {
		return nil
	}
	recipient := e.RecipientID
	if recipient == "" {
		recipient = m.RecipientID()
	}
	if recipient == "" {
		return nil
	}

	p.notifier.Notify(ctx, recipient,
		"Message from the platform",
		m.Body,
		map[string]string{"message_id": m.ID},
	)
	return nil
}

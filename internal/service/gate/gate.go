package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"transportmarket/internal/apperr"
	"transportmarket/internal/domain"
	"transportmarket/internal/logx"
	"transportmarket/internal/service/orders"
)

// Service is the offer-gating pipeline. Every courier message runs through
// the full check sequence, not only the first: verification and suspension
// are administratively mutable at any time, and a single initial check would
// let a since-suspended courier keep messaging.
type Service struct {
	orders           orderGetter
	profiles         profileGetter
	messages         messageStore
	sink             eventSink
	operationTimeout time.Duration
	logger           logx.Logger
	rejections       *prometheus.CounterVec
	now              func() time.Time
	newID            func() string
}

// NewService creates and configures the gate. Sink and rejections may be nil.
func NewService(o orderGetter, p profileGetter, m messageStore, sink eventSink, timeout time.Duration, logger logx.Logger, rejections *prometheus.CounterVec) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		orders:           o,
		profiles:         p,
		messages:         m,
		sink:             sink,
		operationTimeout: timeout,
		logger:           logger,
		rejections:       rejections,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// SubmitCourierMessage validates and persists a courier's message on an
// order. Checks run in order and short-circuit on the first failure; the
// offer cap is consulted only on the courier's first contact with the order.
func (s *Service) SubmitCourierMessage(ctx context.Context, orderID, courierID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.TrimSpace(orderID) == "" || strings.TrimSpace(courierID) == "" {
		return nil, apperr.ErrInvalid
	}

	ctxOp, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.orders.Get(ctxOp, orderID)
	if err != nil {
		return nil, infra(err)
	}
	if o == nil {
		return nil, s.reject(apperr.ErrOrderNotFound, orderID, courierID)
	}

	profile, err := s.profiles.Get(ctxOp, courierID)
	if err != nil {
		return nil, infra(err)
	}
	if profile == nil {
		return nil, s.reject(apperr.ErrCourierAccountMissing, orderID, courierID)
	}
	if profile.Suspended {
		return nil, s.reject(apperr.ErrCourierSuspended, orderID, courierID)
	}
	if !profile.Verified && !o.OffererPolicy.AllowsUnverified() {
		return nil, s.reject(apperr.ErrVerificationRequired, orderID, courierID)
	}

	already, err := s.messages.CourierHasMessaged(ctxOp, orderID, courierID)
	if err != nil {
		return nil, infra(err)
	}
	if !already {
		// a courier already in the conversation is exempt: the cap bounds
		// distinct offers, not messages
		if ceiling, capped := o.CapPolicy.Ceiling(); capped {
			n, err := s.messages.DistinctCourierSenders(ctxOp, orderID)
			if err != nil {
				return nil, infra(err)
			}
			if n >= ceiling {
				return nil, s.reject(apperr.ErrOfferCapReached, orderID, courierID)
			}
		}
	}

	m := &domain.Message{
		ID:         s.newID(),
		OrderID:    orderID,
		ClientID:   o.ClientID,
		CourierID:  courierID,
		SenderID:   courierID,
		SenderRole: domain.RoleCourier,
		Body:       text,
		Read:       false,
		CreatedAt:  s.now(),
	}
	if err := s.messages.Insert(ctxOp, m); err != nil {
		return nil, infra(err)
	}

	s.logger.Info("courier message accepted",
		logx.String("event", "courier_message_accepted"),
		logx.String("order_id", orderID),
		logx.String("courier_id", courierID),
		logx.Bool("first_offer", !already),
	)

	s.emit(ctx, orders.Event{
		Type:      orders.EventMessageCreated,
		OrderID:   orderID,
		MessageID: m.ID,
		CreatedAt: m.CreatedAt,
	})
	return m, nil
}

// SubmitClientMessage appends a client's reply in an existing conversation.
// Clients are not gated beyond owning the order.
func (s *Service) SubmitClientMessage(ctx context.Context, orderID, clientID, courierID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.TrimSpace(courierID) == "" {
		return nil, apperr.ErrInvalid
	}

	ctxOp, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.orders.Get(ctxOp, orderID)
	if err != nil {
		return nil, infra(err)
	}
	if o == nil {
		return nil, apperr.ErrOrderNotFound
	}
	if o.ClientID != clientID {
		return nil, apperr.ErrInvalid
	}

	m := &domain.Message{
		ID:         s.newID(),
		OrderID:    orderID,
		ClientID:   clientID,
		CourierID:  courierID,
		SenderID:   clientID,
		SenderRole: domain.RoleClient,
		Body:       text,
		Read:       false,
		CreatedAt:  s.now(),
	}
	if err := s.messages.Insert(ctxOp, m); err != nil {
		return nil, infra(err)
	}

	s.emit(ctx, orders.Event{
		Type:      orders.EventMessageCreated,
		OrderID:   orderID,
		MessageID: m.ID,
		CreatedAt: m.CreatedAt,
	})
	return m, nil
}

// SubmitAdminMessage appends a platform-operator message on the
// administrative channel toward one user.
func (s *Service) SubmitAdminMessage(ctx context.Context, recipientID, adminID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.TrimSpace(recipientID) == "" {
		return nil, apperr.ErrInvalid
	}

	ctxOp, cancel := s.withTimeout(ctx)
	defer cancel()

	m := &domain.Message{
		ID:         s.newID(),
		ClientID:   recipientID,
		SenderID:   adminID,
		SenderRole: domain.RoleAdmin,
		Body:       text,
		Read:       false,
		CreatedAt:  s.now(),
	}
	if err := s.messages.Insert(ctxOp, m); err != nil {
		return nil, infra(err)
	}

	s.emit(ctx, orders.Event{
		Type:        orders.EventAdminMessageCreated,
		MessageID:   m.ID,
		RecipientID: recipientID,
		CreatedAt:   m.CreatedAt,
	})
	return m, nil
}

// MarkRead flips the read flag of a message. Only the non-sender party may
// observe a message as read.
func (s *Service) MarkRead(ctx context.Context, messageID, readerID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	m, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return infra(err)
	}
	if m == nil {
		return apperr.ErrNotFound
	}

	ok, err := s.messages.MarkRead(ctx, messageID, readerID)
	if err != nil {
		return infra(err)
	}
	if !ok {
		return apperr.ErrInvalid
	}
	return nil
}

// reject records the rejection metric and returns the sentinel unchanged.
// Rejections are expected outcomes, not system errors, so they are not
// logged at error level.
func (s *Service) reject(sentinel error, orderID, courierID string) error {
	if s.rejections != nil {
		s.rejections.WithLabelValues(reasonOf(sentinel)).Inc()
	}
	s.logger.Debug("courier message rejected",
		logx.String("order_id", orderID),
		logx.String("courier_id", courierID),
		logx.String("reason", reasonOf(sentinel)),
	)
	return sentinel
}

// reasonOf names a rejection for metrics and API payloads.
func reasonOf(err error) string {
	switch {
	case errors.Is(err, apperr.ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, apperr.ErrCourierAccountMissing):
		return "courier_account_missing"
	case errors.Is(err, apperr.ErrCourierSuspended):
		return "courier_suspended"
	case errors.Is(err, apperr.ErrVerificationRequired):
		return "verification_required"
	case errors.Is(err, apperr.ErrOfferCapReached):
		return "offer_cap_reached"
	default:
		return "unknown"
	}
}

// Reason exposes the stable rejection reason string for a gate error.
func Reason(err error) string {
	return reasonOf(err)
}

// infra translates a timed-out store call into the generic unavailable
// failure instead of hanging or leaking driver errors.
func infra(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("store timeout: %w", apperr.ErrUnavailable)
	}
	return err
}

func (s *Service) emit(ctx context.Context, e orders.Event) {
	if s.sink != nil {
		s.sink.Emit(ctx, e)
	}
}

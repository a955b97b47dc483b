package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"transportmarket/internal/apperr"
	"transportmarket/internal/domain"
	"transportmarket/internal/logx"
)

// CreateInput carries the fields of a new transport request. The external
// order form is the sole writer; this service validates and persists.
type CreateInput struct {
	ClientID      string
	ServiceType   domain.ServiceType
	Pickup        domain.Location
	Delivery      domain.Location
	OffererPolicy domain.OffererPolicy
	CapPolicy     domain.OfferCapPolicy
	Details       domain.OrderDetails
}

// Service owns the order lifecycle: creation, monotonic status transitions,
// assignment and archival.
type Service struct {
	repo             orderRepository
	sink             EventSink
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() string
}

// NewService creates and configures an order lifecycle Service. The sink may
// be nil when no trigger surface is wired.
func NewService(r orderRepository, sink EventSink, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		sink:             sink,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateCreate(in *CreateInput) error {
	if strings.TrimSpace(in.ClientID) == "" {
		return apperr.ErrInvalid
	}
	if !in.ServiceType.Valid() {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(in.Pickup.Country) == "" || strings.TrimSpace(in.Delivery.Country) == "" {
		return apperr.ErrInvalid
	}
	if in.OffererPolicy == "" {
		in.OffererPolicy = domain.OfferersAny
	}
	if !in.OffererPolicy.Valid() {
		return apperr.ErrInvalid
	}
	if in.CapPolicy == "" {
		in.CapPolicy = domain.CapUnlimited
	}
	if !in.CapPolicy.Valid() {
		return apperr.ErrInvalid
	}
	if !in.Details.MatchesServiceType(in.ServiceType) {
		return apperr.ErrInvalid
	}
	return nil
}

// Create persists a new order in the new status and fires the creation
// event. The event outcome never affects the creation result.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	id := s.newID()
	o := &domain.Order{
		ID:            id,
		Number:        orderNumber(id),
		ClientID:      in.ClientID,
		ServiceType:   in.ServiceType,
		Pickup:        in.Pickup,
		Delivery:      in.Delivery,
		Status:        domain.StatusNew,
		OffererPolicy: in.OffererPolicy,
		CapPolicy:     in.CapPolicy,
		Details:       in.Details,
		CreatedAt:     s.now(),
	}

	ctxOp, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctxOp, o); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		logx.String("event", "order_created"),
		logx.String("order_id", o.ID),
		logx.String("order_number", o.Number),
		logx.String("service_type", string(o.ServiceType)),
	)

	if s.sink != nil {
		s.sink.Emit(ctx, Event{
			Type:      EventOrderCreated,
			OrderID:   o.ID,
			CreatedAt: o.CreatedAt,
		})
	}
	return o, nil
}

// Get retrieves an order by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// Transition moves an order to the next lifecycle status. Illegal moves,
// including any backward move, fail with ErrInvalid; losing a race against a
// concurrent transition fails with ErrConflict.
func (s *Service) Transition(ctx context.Context, id string, next domain.OrderStatus) error {
	if !next.Valid() {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return apperr.ErrNotFound
	}
	if !o.Status.CanTransition(next) {
		return fmt.Errorf("%s -> %s: %w", o.Status, next, apperr.ErrInvalid)
	}

	// compare-and-set against the status just read; a concurrent transition
	// invalidates this one instead of being overwritten
	ok, err := s.repo.SetStatus(ctx, id, o.Status, next)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrConflict
	}

	s.logger.Info("order status changed",
		logx.String("event", "order_status_changed"),
		logx.String("order_id", id),
		logx.String("status", string(next)),
	)
	return nil
}

// Assign gives the order to a courier. Assignment happens out of band of the
// offer gate (accepting an offer); only one courier may hold it, enforced by
// the conditional update.
func (s *Service) Assign(ctx context.Context, id, courierID string) error {
	if strings.TrimSpace(courierID) == "" {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return apperr.ErrNotFound
	}

	ok, err := s.repo.Assign(ctx, id, courierID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrConflict
	}

	s.logger.Info("order assigned",
		logx.String("event", "order_assigned"),
		logx.String("order_id", id),
		logx.String("courier_id", courierID),
	)
	return nil
}

// Dismiss terminates an order administratively or by courier action.
func (s *Service) Dismiss(ctx context.Context, id string) error {
	return s.Transition(ctx, id, domain.StatusDismissed)
}

// Archive soft-deletes an order once it reached a state with no further
// transitions worth keeping it live for. The retention sweep hard-deletes it
// after the configured window.
func (s *Service) Archive(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return apperr.ErrNotFound
	}
	if !o.Status.Archivable() {
		return fmt.Errorf("archive from %s: %w", o.Status, apperr.ErrInvalid)
	}
	if o.Archived {
		return apperr.ErrConflict
	}

	ok, err := s.repo.Archive(ctx, id, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrConflict
	}

	s.logger.Info("order archived",
		logx.String("event", "order_archived"),
		logx.String("order_id", id),
	)
	return nil
}

// orderNumber derives the human-readable order number from the order ID.
func orderNumber(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return "TM-" + strings.ToUpper(compact)
}

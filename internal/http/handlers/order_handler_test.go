package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"transportmarket/internal/apperr"
	"transportmarket/internal/domain"
	"transportmarket/internal/http/handlers"
	mw "transportmarket/internal/http/middleware"
	"transportmarket/internal/service/orders"
	testlog "transportmarket/internal/testutil"
)

type stubOrderUsecase struct {
	createFn     func(ctx context.Context, in orders.CreateInput) (*domain.Order, error)
	getFn        func(ctx context.Context, id string) (*domain.Order, error)
	transitionFn func(ctx context.Context, id string, next domain.OrderStatus) error
	assignFn     func(ctx context.Context, id, courierID string) error
	dismissFn    func(ctx context.Context, id string) error
	archiveFn    func(ctx context.Context, id string) error
}

func (s *stubOrderUsecase) Create(ctx context.Context, in orders.CreateInput) (*domain.Order, error) {
	return s.createFn(ctx, in)
}

func (s *stubOrderUsecase) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.getFn(ctx, id)
}

func (s *stubOrderUsecase) Transition(ctx context.Context, id string, next domain.OrderStatus) error {
	return s.transitionFn(ctx, id, next)
}

func (s *stubOrderUsecase) Assign(ctx context.Context, id, courierID string) error {
	return s.assignFn(ctx, id, courierID)
}

func (s *stubOrderUsecase) Dismiss(ctx context.Context, id string) error {
	return s.dismissFn(ctx, id)
}

func (s *stubOrderUsecase) Archive(ctx context.Context, id string) error {
	return s.archiveFn(ctx, id)
}

func orderRouter(uc *stubOrderUsecase) http.Handler {
	h := handlers.NewOrderHandler(uc, testlog.New().Logger())
	r := chi.NewRouter()
	r.Use(mw.WithIdentity)
	r.Post("/orders", h.Create)
	r.Get("/orders/{orderID}", h.Get)
	r.Post("/orders/{orderID}/status", h.Transition)
	r.Post("/orders/{orderID}/assign", h.Assign)
	r.Post("/orders/{orderID}/dismiss", h.Dismiss)
	r.Post("/orders/{orderID}/archive", h.Archive)
	return r
}

func asClient(r *http.Request, id string) *http.Request {
	r.Header.Set("X-User-ID", id)
	r.Header.Set("X-User-Role", "client")
	return r
}

func TestOrderHandler_Create(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{createFn: func(_ context.Context, in orders.CreateInput) (*domain.Order, error) {
		require.Equal(t, "client-1", in.ClientID)
		require.Equal(t, domain.ServiceParcel, in.ServiceType)
		return &domain.Order{
			ID:            "order-1",
			Number:        "TM-0A1B2C3D",
			ClientID:      in.ClientID,
			ServiceType:   in.ServiceType,
			Pickup:        in.Pickup,
			Delivery:      in.Delivery,
			Status:        domain.StatusNew,
			OffererPolicy: domain.OfferersAny,
			CapPolicy:     domain.CapUnlimited,
			CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}, nil
	}}

	body := `{"service_type":"parcel","pickup":{"country":"RO"},"delivery":{"country":"DE"}}`
	r := asClient(httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)), "client-1")
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"number":"TM-0A1B2C3D"`)
	require.Contains(t, w.Body.String(), `"status":"new"`)
}

func TestOrderHandler_Create_RequiresIdentity(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{}
	r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandler_Create_CourierForbidden(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{}
	r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	r.Header.Set("X-User-ID", "courier-1")
	r.Header.Set("X-User-Role", "courier")
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderHandler_Create_BadJSON(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{}
	r := asClient(httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"service_type":`)), "client-1")
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{getFn: func(context.Context, string) (*domain.Order, error) {
		return nil, apperr.ErrNotFound
	}}

	r := asClient(httptest.NewRequest(http.MethodGet, "/orders/missing", nil), "client-1")
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_LifecycleRequiresIdentity(t *testing.T) {
	t.Parallel()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/orders/order-1"},
		{http.MethodPost, "/orders/order-1/status"},
		{http.MethodPost, "/orders/order-1/assign"},
		{http.MethodPost, "/orders/order-1/dismiss"},
		{http.MethodPost, "/orders/order-1/archive"},
	}

	for _, tt := range routes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			orderRouter(&stubOrderUsecase{}).ServeHTTP(w, r)

			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestOrderHandler_Transition(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{transitionFn: func(_ context.Context, id string, next domain.OrderStatus) error {
		require.Equal(t, "order-1", id)
		require.Equal(t, domain.StatusAssigned, next)
		return nil
	}}

	r := asClient(httptest.NewRequest(http.MethodPost, "/orders/order-1/status", strings.NewReader(`{"status":"assigned"}`)), "client-1")
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestOrderHandler_Transition_IllegalMove(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{transitionFn: func(context.Context, string, domain.OrderStatus) error {
		return apperr.ErrInvalid
	}}

	r := asClient(httptest.NewRequest(http.MethodPost, "/orders/order-1/status", strings.NewReader(`{"status":"new"}`)), "client-1")
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Assign_Conflict(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{assignFn: func(context.Context, string, string) error {
		return apperr.ErrConflict
	}}

	r := asClient(httptest.NewRequest(http.MethodPost, "/orders/order-1/assign", strings.NewReader(`{"courier_id":"courier-2"}`)), "client-1")
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderHandler_Archive(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{archiveFn: func(_ context.Context, id string) error {
		require.Equal(t, "order-1", id)
		return nil
	}}

	r := asClient(httptest.NewRequest(http.MethodPost, "/orders/order-1/archive", nil), "client-1")
	w := httptest.NewRecorder()
	orderRouter(uc).ServeHTTP(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"transportmarket/internal/domain"
	"transportmarket/internal/logx"
	"transportmarket/internal/service/orders"
)

// OrderHandler exposes the order lifecycle over HTTP.
type OrderHandler struct {
	uc     orderUsecase
	logger logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(uc orderUsecase, logger logx.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// Create handles POST /orders. The authenticated client becomes the owner.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if ident.Role != domain.RoleClient {
		writeError(w, r, http.StatusForbidden, "only clients create orders")
		return
	}

	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.uc.Create(r.Context(), orders.CreateInput{
		ClientID:      ident.ID,
		ServiceType:   domain.ServiceType(req.ServiceType),
		Pickup:        req.Pickup.toDomain(),
		Delivery:      req.Delivery.toDomain(),
		OffererPolicy: domain.OffererPolicy(req.OffererPolicy),
		CapPolicy:     domain.OfferCapPolicy(req.CapPolicy),
		Details:       req.Details,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, orderToResponse(o))
}

// Get handles GET /orders/{orderID}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	id := chi.URLParam(r, "orderID")
	o, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, orderToResponse(o))
}

// Transition handles POST /orders/{orderID}/status.
func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	id := chi.URLParam(r, "orderID")

	var req transitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.uc.Transition(r.Context(), id, domain.OrderStatus(req.Status)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": req.Status})
}

// Assign handles POST /orders/{orderID}/assign.
func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	id := chi.URLParam(r, "orderID")

	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.uc.Assign(r.Context(), id, req.CourierID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"courier_id": req.CourierID})
}

// Dismiss handles POST /orders/{orderID}/dismiss.
func (h *OrderHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	id := chi.URLParam(r, "orderID")
	if err := h.uc.Dismiss(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Archive handles POST /orders/{orderID}/archive.
func (h *OrderHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	id := chi.URLParam(r, "orderID")
	if err := h.uc.Archive(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"transportmarket/internal/domain"
	"transportmarket/internal/logx"
)

// MessageHandler exposes the gated messaging surface over HTTP.
type MessageHandler struct {
	uc     gateUsecase
	logger logx.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(uc gateUsecase, logger logx.Logger) *MessageHandler {
	return &MessageHandler{uc: uc, logger: logger}
}

// Post handles POST /orders/{orderID}/messages. Couriers run through the
// offer gate; clients reply in an existing courier thread.
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "orderID")

	var req postMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var (
		m   *domain.Message
		err error
	)
	switch ident.Role {
	case domain.RoleCourier:
		m, err = h.uc.SubmitCourierMessage(r.Context(), orderID, ident.ID, req.Text)
	case domain.RoleClient:
		m, err = h.uc.SubmitClientMessage(r.Context(), orderID, ident.ID, req.CourierID, req.Text)
	default:
		writeError(w, r, http.StatusForbidden, "role cannot post order messages")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, messageToResponse(m))
}

// PostAdmin handles POST /admin/messages, the platform-operator channel.
func (h *MessageHandler) PostAdmin(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if ident.Role != domain.RoleAdmin {
		writeError(w, r, http.StatusForbidden, "admin role required")
		return
	}

	var req adminMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.uc.SubmitAdminMessage(r.Context(), req.RecipientID, ident.ID, req.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, messageToResponse(m))
}

// MarkRead handles POST /messages/{messageID}/read.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	messageID := chi.URLParam(r, "messageID")

	if err := h.uc.MarkRead(r.Context(), messageID, ident.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

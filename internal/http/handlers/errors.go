package handlers

import (
	"errors"
	"net/http"

	"transportmarket/internal/apperr"
	mw "transportmarket/internal/http/middleware"
	"transportmarket/internal/service/gate"
)

// writeServiceError maps service-layer errors onto HTTP statuses. Gate
// rejections carry their stable reason so clients can render the exact cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperr.IsRejection(err):
		writeRejection(w, r, err.Error(), gate.Reason(err))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "temporarily unavailable")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// requireIdentity extracts the caller identity or answers 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (mw.Identity, bool) {
	ident, ok := mw.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "identity required")
	}
	return ident, ok
}

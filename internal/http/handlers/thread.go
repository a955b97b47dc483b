package handlers

import (
	"net/http"

	"transportmarket/internal/logx"
)

// ThreadHandler serves per-user conversation summaries.
type ThreadHandler struct {
	uc     threadUsecase
	logger logx.Logger
}

// NewThreadHandler creates a new ThreadHandler.
func NewThreadHandler(uc threadUsecase, logger logx.Logger) *ThreadHandler {
	return &ThreadHandler{uc: uc, logger: logger}
}

// List handles GET /threads for the authenticated user.
func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	summaries, err := h.uc.Summarize(r.Context(), ident.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, threadsToResponse(summaries))
}

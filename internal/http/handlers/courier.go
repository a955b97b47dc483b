package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"transportmarket/internal/domain"
	"transportmarket/internal/logx"
)

// CourierHandler manages courier coverage zones and device push tokens.
type CourierHandler struct {
	zones  zoneRegistry
	tokens tokenRegistry
	logger logx.Logger
	now    func() time.Time
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(zones zoneRegistry, tokens tokenRegistry, logger logx.Logger) *CourierHandler {
	return &CourierHandler{
		zones:  zones,
		tokens: tokens,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// authorizeCourier checks that the caller manages their own resources. Admins
// may manage any courier.
func (h *CourierHandler) authorizeCourier(w http.ResponseWriter, r *http.Request, courierID string) bool {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return false
	}
	if ident.Role == domain.RoleAdmin || ident.ID == courierID {
		return true
	}
	writeError(w, r, http.StatusForbidden, "not your resource")
	return false
}

// ListZones handles GET /couriers/{courierID}/zones.
func (h *CourierHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	courierID := chi.URLParam(r, "courierID")
	if !h.authorizeCourier(w, r, courierID) {
		return
	}

	zones, err := h.zones.ListZones(r.Context(), courierID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]zoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, zoneResponse{ID: z.ID, Country: z.Country, Region: z.Region, City: z.City})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// AddZone handles POST /couriers/{courierID}/zones.
func (h *CourierHandler) AddZone(w http.ResponseWriter, r *http.Request) {
	courierID := chi.URLParam(r, "courierID")
	if !h.authorizeCourier(w, r, courierID) {
		return
	}

	var req zoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Country) == "" {
		writeError(w, r, http.StatusBadRequest, "country is required")
		return
	}

	z := &domain.CoverageZone{
		CourierID: courierID,
		Country:   req.Country,
		Region:    req.Region,
		City:      req.City,
	}
	id, err := h.zones.AddZone(r.Context(), z)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.logger.Info("coverage zone added",
		logx.String("courier_id", courierID),
		logx.String("country", req.Country),
	)
	writeJSON(w, r, http.StatusCreated, zoneResponse{ID: id, Country: req.Country, Region: req.Region, City: req.City})
}

// DeleteZone handles DELETE /couriers/{courierID}/zones/{zoneID}.
func (h *CourierHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	courierID := chi.URLParam(r, "courierID")
	if !h.authorizeCourier(w, r, courierID) {
		return
	}
	zoneID, err := int64FromURL(r, "zoneID")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid zone id")
		return
	}

	ok, err := h.zones.DeleteZone(r.Context(), courierID, zoneID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "zone not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PutPushToken handles PUT /push-token for the authenticated user. One live
// token per user; a new registration replaces the previous one.
func (h *CourierHandler) PutPushToken(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req pushTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		writeError(w, r, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.tokens.Upsert(r.Context(), ident.ID, req.Token, h.now()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

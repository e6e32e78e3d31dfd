package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"salestrack/internal/auth"
)

type leadsSaleRequest struct {
	Date      string `json:"date"`
	Provider  string `json:"provider"`
	OfferType string `json:"offerType"`
}

type leadsOrderRequest struct {
	Date     string `json:"date"`
	Provider string `json:"provider"`
	Quantity int    `json:"quantity"`
}

// parseLeadsDate accepts RFC3339 timestamps or bare dates.
func (h *Handler) parseLeadsDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.ParseInLocation(time.RFC3339, value, h.zone)
	if err != nil {
		date, err = time.ParseInLocation("2006-01-02", value, h.zone)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return date, nil
}

// leadsRange reads from/to, defaulting to the current day when absent.
func (h *Handler) leadsRange(r *http.Request) (time.Time, time.Time, error) {
	from, to, err := parseRangeQuery(r, h.zone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.IsZero() && to.IsZero() {
		now := time.Now().In(h.zone)
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.zone)
		to = from.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func (h *Handler) handleListLeadsSales(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.leadsRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	sales, err := h.service.ListLeadsSales(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load leads sales", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": sales})
}

func (h *Handler) handleCreateLeadsSale(w http.ResponseWriter, r *http.Request) {
	var req leadsSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	date, err := h.parseLeadsDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	claims := auth.FromContext(r.Context())
	id, err := h.service.RecordLeadsSale(r.Context(), date, req.Provider, req.OfferType, claims.UserID)
	if err != nil {
		writeServiceError(w, err, "leads sale not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) handleLeadsBreakdown(w http.ResponseWriter, r *http.Request) {
	day, err := h.recapDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	breakdown, err := h.service.LeadsBreakdownForDay(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to build leads breakdown", nil)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (h *Handler) handleListLeadsOrders(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.leadsRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	orders, err := h.service.ListLeadsOrders(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load leads orders", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": orders})
}

func (h *Handler) handleCreateLeadsOrder(w http.ResponseWriter, r *http.Request) {
	var req leadsOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	date, err := h.parseLeadsDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	id, err := h.service.RecordLeadsOrder(r.Context(), date, req.Provider, req.Quantity)
	if err != nil {
		writeServiceError(w, err, "leads order not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

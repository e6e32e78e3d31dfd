package v1

import (
	"encoding/json"
	"net/http"

	"salestrack/internal/auth"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleListContactsArgued(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	entries, err := h.service.ListContactsArgued(r.Context(), query.Get("from"), query.Get("to"), parseIntQuery(r, "limit", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load contacts argued", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

func (h *Handler) handleGetContactsArgued(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.GetContactsArgued(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeServiceError(w, err, "no entry for that date")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleUpsertContactsArgued(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	claims := auth.FromContext(r.Context())
	if err := h.service.RecordContactsArgued(r.Context(), req.Date, req.Count, claims.UserID); err != nil {
		writeServiceError(w, err, "no entry for that date")
		return
	}
	entry, err := h.service.GetContactsArgued(r.Context(), req.Date)
	if err != nil {
		writeServiceError(w, err, "no entry for that date")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

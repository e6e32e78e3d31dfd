package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleListRecipients(w http.ResponseWriter, r *http.Request) {
	recipients, err := h.service.ListRecipients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load recipients", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": recipients})
}

func (h *Handler) handleAddRecipient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	id, err := h.service.AddRecipient(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err, "recipient not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "email": req.Email})
}

func (h *Handler) handleDeleteRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "recipientID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid recipient id", nil)
		return
	}
	if err := h.service.DeleteRecipient(r.Context(), id); err != nil {
		writeServiceError(w, err, "recipient not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

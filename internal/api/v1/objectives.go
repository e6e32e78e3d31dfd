package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"salestrack/internal/auth"
	"salestrack/internal/domain"
	"salestrack/internal/service"
	"salestrack/internal/store"

	"github.com/go-chi/chi/v5"
)

type objectiveRequest struct {
	Type           string `json:"type"`
	Label          string `json:"label"`
	Target         int    `json:"target"`
	Period         string `json:"period"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	WeekYear       int    `json:"weekYear"`
	WeekNumber     int    `json:"weekNumber"`
	DayYear        int    `json:"dayYear"`
	DayMonth       int    `json:"dayMonth"`
	DayDate        int    `json:"dayDate"`
	Scope          string `json:"scope"`
	AssignedTo     string `json:"assignedTo"`
	AssignedToName string `json:"assignedToName"`
	IsActive       *bool  `json:"isActive"`
}

func (req objectiveRequest) toInput(claims auth.Claims) store.ObjectiveInput {
	input := store.ObjectiveInput{
		Type:           domain.ObjectiveType(req.Type),
		Label:          req.Label,
		Target:         req.Target,
		Period:         domain.PeriodKind(req.Period),
		Year:           req.Year,
		Month:          req.Month,
		WeekYear:       req.WeekYear,
		WeekNumber:     req.WeekNumber,
		DayYear:        req.DayYear,
		DayMonth:       req.DayMonth,
		DayDate:        req.DayDate,
		Scope:          domain.Scope(req.Scope),
		AssignedTo:     req.AssignedTo,
		AssignedToName: req.AssignedToName,
		IsActive:       true,
		CreatedBy:      claims.UserID,
	}
	if req.IsActive != nil {
		input.IsActive = *req.IsActive
	}
	if input.Scope == domain.ScopePersonal && input.AssignedTo == "" {
		input.UserID = claims.UserID
	}
	return input
}

func (h *Handler) handleListObjectives(w http.ResponseWriter, r *http.Request) {
	scope := domain.Scope(r.URL.Query().Get("scope"))
	objectives, err := h.service.ListObjectives(r.Context(), scope)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load objectives", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": objectives})
}

func (h *Handler) handleGetObjective(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid objective id", nil)
		return
	}
	o, err := h.service.GetObjective(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "objective not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleCreateObjective(w http.ResponseWriter, r *http.Request) {
	var req objectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	id, err := h.service.CreateObjective(r.Context(), req.toInput(auth.FromContext(r.Context())))
	if err != nil {
		writeServiceError(w, err, "objective not found")
		return
	}
	o, err := h.service.GetObjective(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "objective not found")
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) handleUpdateObjective(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid objective id", nil)
		return
	}
	var req objectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	if err := h.service.UpdateObjective(r.Context(), id, req.toInput(auth.FromContext(r.Context()))); err != nil {
		writeServiceError(w, err, "objective not found")
		return
	}
	o, err := h.service.GetObjective(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "objective not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleActivateObjective(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid objective id", nil)
		return
	}
	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	if err := h.service.SetObjectiveActive(r.Context(), id, req.IsActive); err != nil {
		writeServiceError(w, err, "objective not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "isActive": req.IsActive})
}

func (h *Handler) handleDeleteObjective(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid objective id", nil)
		return
	}
	if err := h.service.DeleteObjective(r.Context(), id); err != nil {
		writeServiceError(w, err, "objective not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// monthFilterFromQuery reads the optional month restriction for progress
// computations.
func monthFilterFromQuery(r *http.Request) *service.MonthFilter {
	year := parseIntQuery(r, "monthYear", 0)
	month := parseIntQuery(r, "month", 0)
	if year == 0 || month == 0 {
		return nil
	}
	return &service.MonthFilter{Year: year, Month: month}
}

func (h *Handler) handleObjectiveProgress(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid objective id", nil)
		return
	}
	p, err := h.service.ObjectiveProgress(r.Context(), id, time.Now().In(h.zone), monthFilterFromQuery(r))
	if err != nil {
		writeServiceError(w, err, "objective not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleActiveProgress(w http.ResponseWriter, r *http.Request) {
	scope := domain.Scope(r.URL.Query().Get("scope"))
	items, err := h.service.ActiveProgress(r.Context(), scope, time.Now().In(h.zone), monthFilterFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to compute progress", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

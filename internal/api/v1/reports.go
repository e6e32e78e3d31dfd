package v1

import (
	"net/http"
	"time"
)

// recapDay reads the optional date query, defaulting to today.
func (h *Handler) recapDay(r *http.Request) (time.Time, error) {
	day, err := parseDateQuery(r, "date", h.zone)
	if err != nil {
		return time.Time{}, err
	}
	if day.IsZero() {
		day = time.Now().In(h.zone)
	}
	return day, nil
}

func (h *Handler) handleGetRecap(w http.ResponseWriter, r *http.Request) {
	day, err := h.recapDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, h.zone)
	to := from.Add(24*time.Hour - time.Nanosecond)
	recap, err := h.service.BuildRecap(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to build recap", nil)
		return
	}
	writeJSON(w, http.StatusOK, recap)
}

func (h *Handler) handleSendRecap(w http.ResponseWriter, r *http.Request) {
	day, err := h.recapDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if err := h.service.SendDailyRecap(r.Context(), day); err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to send recap", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sent": true, "day": day.Format("2006-01-02")})
}

package v1

import (
	"net/http"
	"time"
)

type weekInfo struct {
	Year   int `json:"year"`
	Number int `json:"number"`
}

// handleWeeksOfMonth lists the ISO weeks touching a month so the front end
// can offer them when creating week objectives.
func (h *Handler) handleWeeksOfMonth(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(h.zone)
	year := parseIntQuery(r, "year", now.Year())
	month := parseIntQuery(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "month must be between 1 and 12", nil)
		return
	}
	weeks := h.service.WeeksOfMonth(year, month)
	items := make([]weekInfo, 0, len(weeks))
	for _, week := range weeks {
		items = append(items, weekInfo{Year: week.Year, Number: week.Number})
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "month": month, "items": items})
}

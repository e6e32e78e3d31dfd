package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salestrack/internal/domain"
)

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

func parseIntQuery(r *http.Request, name string, fallback int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// parseDateQuery reads a YYYY-MM-DD query parameter as the start of that day.
func parseDateQuery(r *http.Request, name string, loc *time.Location) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: expected YYYY-MM-DD", name)
	}
	return t, nil
}

// parseRangeQuery reads from/to dates; to is widened to its last nanosecond
// so the range is day-inclusive.
func parseRangeQuery(r *http.Request, loc *time.Location) (time.Time, time.Time, error) {
	from, err := parseDateQuery(r, "from", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDateQuery(r, "to", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !to.IsZero() {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func parseStatuses(value string) []domain.OrderStatus {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	statuses := make([]domain.OrderStatus, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			statuses = append(statuses, domain.OrderStatus(part))
		}
	}
	return statuses
}

func splitCSVQuery(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

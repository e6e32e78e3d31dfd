package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"salestrack/internal/service"

	"github.com/jackc/pgx/v5"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Fields: fields}})
}

// writeServiceError maps service failures onto the error envelope.
func writeServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		fields := make(map[string]string, len(vErr.Fields))
		for _, message := range vErr.Fields {
			// Validation messages lead with the field they concern.
			name, _, found := strings.Cut(message, " must ")
			if !found {
				name, _, _ = strings.Cut(message, " is ")
			}
			fields[name] = message
		}
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", fields)
	case errors.Is(err, service.ErrDuplicate):
		writeError(w, http.StatusConflict, "DUPLICATE", err.Error(), nil)
	case errors.Is(err, pgx.ErrNoRows):
		writeError(w, http.StatusNotFound, "NOT_FOUND", notFoundMessage, nil)
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

package http

import (
	"encoding/json"
	"net/http"

	"jobunya-carrental-backend/internal/logger"
)

// detail strings the client relies on to distinguish auth failures from
// everything else.
const (
	detailNoCredentials = "Authentication credentials were not provided."
	detailInvalidToken  = "Invalid token."
	detailForbidden     = "You do not have permission to perform this action."
	detailNotFound      = "Not found."
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeDetail writes a single-message error body: {"detail": "..."}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeFieldErrors writes a field-keyed validation error map, the shape
// clients use to surface per-field messages on forms.
func writeFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusBadRequest, fields)
}

func fieldError(field, message string) map[string][]string {
	return map[string][]string{field: {message}}
}

type listResponse struct {
	Count    int32       `json:"count"`
	Page     int32       `json:"page"`
	PageSize int32       `json:"page_size"`
	Results  interface{} `json:"results"`
}

// Package handler contains the HTTP handlers for the artwork tracker API.
// Handlers translate between the HTTP surface and the sync and repository
// layers; all business rules live below them.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// CountResponse carries a single affected-row count
type CountResponse struct {
	Count int `json:"count"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are sent; nothing left to do but log
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// DecodeAndValidateRequest decodes a JSON body into req and validates its
// tags. On failure the response has been written and the handler must return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// GetUUIDParam retrieves a required UUID query parameter. If it is missing or
// malformed the response has been written and the handler must return.
func GetUUIDParam(r *http.Request, w http.ResponseWriter, paramName string) (uuid.UUID, bool) {
	log := logger.FromContext(r.Context())

	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		log.Warn(fmt.Sprintf("Malformed %s query parameter", paramName), "error", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidUUIDParam, paramName))
		return uuid.Nil, false
	}
	return id, true
}

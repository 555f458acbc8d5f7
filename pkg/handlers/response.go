package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/datapilot-ai/datapilot-engine/pkg/apperrors"
)

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes a JSON error body with the taxonomy category as the
// error code and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, category apperrors.Category, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   string(category),
		"message": message,
	})
}

// statusForCategory maps an error category to its HTTP status.
func statusForCategory(category apperrors.Category) int {
	switch category {
	case apperrors.CategoryInvalidInput:
		return http.StatusBadRequest
	case apperrors.CategoryAuthentication:
		return http.StatusUnauthorized
	case apperrors.CategoryRateLimited:
		return http.StatusTooManyRequests
	case apperrors.CategoryContextTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperrors.CategoryTimeout:
		return http.StatusGatewayTimeout
	case apperrors.CategoryProviderServer, apperrors.CategoryNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

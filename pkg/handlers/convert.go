package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/apperrors"
	"github.com/datapilot-ai/datapilot-engine/pkg/models"
	"github.com/datapilot-ai/datapilot-engine/pkg/tabular"
)

// ConvertResponse carries the serialized CSV text.
type ConvertResponse struct {
	CSV string `json:"csv"`
}

// ConvertHandler turns a JSON Table back into CSV text, used by clients that
// want to export the parsed dataset.
type ConvertHandler struct {
	logger *zap.Logger
}

// NewConvertHandler creates the convert endpoint handler.
func NewConvertHandler(logger *zap.Logger) *ConvertHandler {
	return &ConvertHandler{logger: logger.Named("convert")}
}

// RegisterRoutes registers the convert route on the given router.
func (h *ConvertHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/convert-to-csv", h.Convert)
}

// Convert handles POST /api/convert-to-csv. The body is a Table as JSON;
// the response wraps the RFC-4180 serialization.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var table models.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		h.writeAppError(w, apperrors.Wrap(apperrors.CategoryInvalidInput, "Request body must be a JSON table", err))
		return
	}

	if err := table.Validate(); err != nil {
		h.writeAppError(w, apperrors.Wrap(apperrors.CategoryInvalidInput, "Invalid table", err))
		return
	}

	csvData, err := tabular.ToCSV(&table)
	if err != nil {
		h.writeAppError(w, apperrors.Wrap(apperrors.CategoryInvalidInput, "Invalid table", err))
		return
	}

	if err := WriteJSON(w, http.StatusOK, ConvertResponse{CSV: csvData}); err != nil {
		h.logger.Error("Failed to encode convert response", zap.Error(err))
	}
}

func (h *ConvertHandler) writeAppError(w http.ResponseWriter, appErr *apperrors.Error) {
	if err := ErrorResponse(w, statusForCategory(appErr.Category), appErr.Category, appErr.Message); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/apperrors"
	"github.com/datapilot-ai/datapilot-engine/pkg/services"
	"github.com/datapilot-ai/datapilot-engine/pkg/tabular"
)

// AnalyzeHandler accepts a dataset upload plus a natural-language query and
// returns the synthesized analysis.
type AnalyzeHandler struct {
	service        services.AnalyticsService
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewAnalyzeHandler creates the analyze endpoint handler.
func NewAnalyzeHandler(service services.AnalyticsService, maxUploadBytes int64, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.Named("analyze"),
	}
}

// RegisterRoutes registers the analyze route on the given router.
func (h *AnalyzeHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/analyze", h.Analyze)
}

// Analyze handles POST /api/analyze. The request is a multipart form with
// three fields: query, file (.csv/.xlsx/.xls upload), and api_key.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeAppError(w, apperrors.New(apperrors.CategoryInvalidInput, "Uploaded file is too large"))
			return
		}
		h.writeAppError(w, apperrors.Wrap(apperrors.CategoryInvalidInput, "Request must be a multipart form", err))
		return
	}

	query := r.FormValue("query")
	apiKey := r.FormValue("api_key")

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeAppError(w, apperrors.New(apperrors.CategoryInvalidInput, "Data file is required"))
		return
	}
	defer file.Close()

	table, err := tabular.ParseFile(header.Filename, file)
	if err != nil {
		h.writeAppError(w, apperrors.Wrap(apperrors.CategoryInvalidInput, "Invalid or empty data file", err))
		return
	}

	h.logger.Info("Received analysis request",
		zap.String("filename", header.Filename),
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColumnCount()))

	result, err := h.service.Analyze(r.Context(), query, table, apiKey)
	if err != nil {
		appErr := apperrors.Classify(err)
		h.logger.Warn("Analysis failed",
			zap.String("category", string(appErr.Category)),
			zap.Error(err))
		h.writeAppError(w, appErr)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode analysis response", zap.Error(err))
	}
}

func (h *AnalyzeHandler) writeAppError(w http.ResponseWriter, appErr *apperrors.Error) {
	if err := ErrorResponse(w, statusForCategory(appErr.Category), appErr.Category, appErr.Message); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

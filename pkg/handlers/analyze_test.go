package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/apperrors"
	"github.com/datapilot-ai/datapilot-engine/pkg/models"
)

// mockAnalytics implements services.AnalyticsService for handler tests.
type mockAnalytics struct {
	result *models.AnalysisResult
	err    error

	calls     int
	lastQuery string
	lastTable *models.Table
	lastKey   string
}

func (m *mockAnalytics) Analyze(ctx context.Context, query string, table *models.Table, apiKey string) (*models.AnalysisResult, error) {
	m.calls++
	m.lastQuery = query
	m.lastTable = table
	m.lastKey = apiKey
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newAnalyzeRouter(svc *mockAnalytics) chi.Router {
	r := chi.NewRouter()
	NewAnalyzeHandler(svc, 1<<20, zap.NewNop()).RegisterRoutes(r)
	return r
}

func multipartBody(t *testing.T, query, filename, fileBody, apiKey string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if query != "" {
		require.NoError(t, writer.WriteField("query", query))
	}
	if apiKey != "" {
		require.NoError(t, writer.WriteField("api_key", apiKey))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileBody))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestAnalyze_Success(t *testing.T) {
	svc := &mockAnalytics{
		result: &models.AnalysisResult{
			Answer: "Revenue peaked in February.",
			Visualization: &models.Visualization{
				Type: models.VisualizationBar,
				Data: []models.VisualizationPoint{{Name: "Feb", Value: 200}},
			},
		},
	}
	router := newAnalyzeRouter(svc)

	body, contentType := multipartBody(t, "which month had the highest revenue", "sales.csv",
		"month,revenue\nJan,100\nFeb,200\n", "sk-test")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Revenue peaked in February.", result.Answer)
	require.NotNil(t, result.Visualization)
	assert.Equal(t, models.VisualizationBar, result.Visualization.Type)

	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, "which month had the highest revenue", svc.lastQuery)
	assert.Equal(t, "sk-test", svc.lastKey)
	require.NotNil(t, svc.lastTable)
	assert.Equal(t, []string{"month", "revenue"}, svc.lastTable.Headers)
	assert.Len(t, svc.lastTable.Rows, 2)
}

func TestAnalyze_MissingFile(t *testing.T) {
	svc := &mockAnalytics{}
	router := newAnalyzeRouter(svc)

	body, contentType := multipartBody(t, "q", "", "", "sk-test")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls, "service must not be reached without a file")

	var errBody map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, string(apperrors.CategoryInvalidInput), errBody["error"])
}

func TestAnalyze_UnsupportedExtension(t *testing.T) {
	svc := &mockAnalytics{}
	router := newAnalyzeRouter(svc)

	body, contentType := multipartBody(t, "q", "data.parquet", "binary", "sk-test")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestAnalyze_NotMultipart(t *testing.T) {
	svc := &mockAnalytics{}
	router := newAnalyzeRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(`{"query": "q"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		category apperrors.Category
		want     int
	}{
		{"invalid input", apperrors.CategoryInvalidInput, http.StatusBadRequest},
		{"authentication", apperrors.CategoryAuthentication, http.StatusUnauthorized},
		{"rate limited", apperrors.CategoryRateLimited, http.StatusTooManyRequests},
		{"context too large", apperrors.CategoryContextTooLarge, http.StatusRequestEntityTooLarge},
		{"timeout", apperrors.CategoryTimeout, http.StatusGatewayTimeout},
		{"provider server", apperrors.CategoryProviderServer, http.StatusBadGateway},
		{"network", apperrors.CategoryNetwork, http.StatusBadGateway},
		{"preprocessing", apperrors.CategoryPreprocessing, http.StatusInternalServerError},
		{"unknown", apperrors.CategoryUnknown, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAnalytics{err: apperrors.New(tc.category, "boom")}
			router := newAnalyzeRouter(svc)

			body, contentType := multipartBody(t, "q", "data.csv", "a\n1\n", "sk-test")
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)

			var errBody map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
			assert.Equal(t, string(tc.category), errBody["error"])
			assert.Equal(t, "boom", errBody["message"])
		})
	}
}

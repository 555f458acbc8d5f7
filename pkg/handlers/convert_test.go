package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConvertRouter() chi.Router {
	r := chi.NewRouter()
	NewConvertHandler(zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestConvert_TableToCSV(t *testing.T) {
	router := newConvertRouter()

	body := `{"headers": ["month", "revenue"], "rows": [["Jan", 100], ["Feb", 200.5]]}`
	req := httptest.NewRequest(http.MethodPost, "/api/convert-to-csv", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "month,revenue\nJan,100\nFeb,200.5\n", resp.CSV)
}

func TestConvert_InvalidJSON(t *testing.T) {
	router := newConvertRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/convert-to-csv", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvert_RaggedTableRejected(t *testing.T) {
	router := newConvertRouter()

	body := `{"headers": ["a", "b"], "rows": [[1]]}`
	req := httptest.NewRequest(http.MethodPost, "/api/convert-to-csv", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

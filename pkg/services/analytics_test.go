package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/apperrors"
	"github.com/datapilot-ai/datapilot-engine/pkg/llm"
	"github.com/datapilot-ai/datapilot-engine/pkg/models"
)

func newTestService(mock *llm.MockCompletionClient) AnalyticsService {
	logger := zap.NewNop()
	return NewAnalyticsService(
		&llm.MockClientProvider{Client: mock},
		newTestResolver(),
		NewPreprocessor(newTestResolver(), 200, logger),
		newTestSynthesizer(),
		logger,
	)
}

func TestAnalyze_EmptyQueryRejectedBeforeNetwork(t *testing.T) {
	mock := llm.NewMockCompletionClient()

	_, err := newTestService(mock).Analyze(context.Background(), "   ", salesTable(), "sk-test")
	require.Error(t, err)

	assert.Equal(t, apperrors.CategoryInvalidInput, apperrors.CategoryOf(err))
	assert.Contains(t, err.Error(), "Query is required")
	assert.Equal(t, 0, mock.CompleteCalls, "validation must reject before any provider call")
}

func TestAnalyze_MissingAPIKeyRejected(t *testing.T) {
	mock := llm.NewMockCompletionClient()

	_, err := newTestService(mock).Analyze(context.Background(), "q", salesTable(), "")
	require.Error(t, err)

	assert.Equal(t, apperrors.CategoryInvalidInput, apperrors.CategoryOf(err))
	assert.Contains(t, err.Error(), "API key is required")
	assert.Equal(t, 0, mock.CompleteCalls)
}

func TestAnalyze_EmptyTableRejected(t *testing.T) {
	mock := llm.NewMockCompletionClient()

	_, err := newTestService(mock).Analyze(context.Background(), "q", models.NewTable(nil, nil), "sk-test")
	require.Error(t, err)

	assert.Equal(t, apperrors.CategoryInvalidInput, apperrors.CategoryOf(err))
	assert.Contains(t, err.Error(), "Invalid or empty data file")
	assert.Equal(t, 0, mock.CompleteCalls)
}

func TestAnalyze_HappyPathTwoProviderCalls(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteFunc = func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
		if mock.CompleteCalls == 1 {
			return `{"queryIntent": {"analysisType": "trend", "visualizationType": "line"}, "relevantColumns": ["month", "revenue"]}`, nil
		}
		return `{"answer": "Revenue is trending up.", "visualization": {"type": "line", "data": [{"name": "Jan", "value": 100}]}}`, nil
	}

	result, err := newTestService(mock).Analyze(context.Background(), "show revenue trend", salesTable(), "sk-test")
	require.NoError(t, err)

	assert.Equal(t, 2, mock.CompleteCalls, "one resolver call plus one synthesis call")
	assert.Equal(t, "Revenue is trending up.", result.Answer)
	require.NotNil(t, result.Visualization)
	assert.Equal(t, models.VisualizationLine, result.Visualization.Type)
}

func TestAnalyze_ResolverDownSynthesisStillAnswers(t *testing.T) {
	// First call (resolver) fails; the pipeline degrades to keyword scoring
	// and the second call (synthesis) still produces an answer over the
	// reduced table.
	mock := llm.NewMockCompletionClient()
	mock.CompleteFunc = func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
		if mock.CompleteCalls == 1 {
			return "", errors.New("connection reset by peer")
		}
		return `{"answer": "Done."}`, nil
	}

	rows := make([][]any, 500)
	for i := range rows {
		rows[i] = []any{i, i}
	}
	table := models.NewTable([]string{"month", "revenue"}, rows)

	result, err := newTestService(mock).Analyze(context.Background(), "show revenue trend", table, "sk-test")
	require.NoError(t, err)
	assert.Equal(t, "Done.", result.Answer)

	// The synthesis payload reflects the reduced table: revenue column only,
	// sampled down to the row budget with both anchors present.
	lines := strings.Split(strings.TrimRight(mock.LastUser, "\n"), "\n")
	require.Equal(t, 201, len(lines), "header plus 200 sampled rows")
	assert.Equal(t, "revenue", lines[0])
	assert.Equal(t, "0", lines[1])
	assert.Equal(t, "499", lines[len(lines)-1])
}

func TestAnalyze_SynthesisAuthFailureClassified(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	mock.CompleteFunc = func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
		if mock.CompleteCalls == 1 {
			return `{"queryIntent": {"analysisType": "descriptive"}, "relevantColumns": ["revenue"]}`, nil
		}
		return "", errors.New("status code 401: Incorrect API key provided")
	}

	_, err := newTestService(mock).Analyze(context.Background(), "q", salesTable(), "sk-bad")
	require.Error(t, err)

	assert.Equal(t, apperrors.CategoryAuthentication, apperrors.CategoryOf(err))
	assert.Contains(t, err.Error(), "API key")
}

func TestAnalyze_ProviderRejectsCredential(t *testing.T) {
	service := NewAnalyticsService(
		&llm.MockClientProvider{Err: errors.New("API key is required")},
		newTestResolver(),
		NewPreprocessor(newTestResolver(), 200, zap.NewNop()),
		newTestSynthesizer(),
		zap.NewNop(),
	)

	_, err := service.Analyze(context.Background(), "q", salesTable(), "sk-test")
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryAuthentication, apperrors.CategoryOf(err))
}

func TestAnalyze_RaggedTableRejected(t *testing.T) {
	mock := llm.NewMockCompletionClient()
	ragged := models.NewTable([]string{"a", "b"}, [][]any{{1, 2}, {3}})

	_, err := newTestService(mock).Analyze(context.Background(), "q", ragged, "sk-test")
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryInvalidInput, apperrors.CategoryOf(err))
}

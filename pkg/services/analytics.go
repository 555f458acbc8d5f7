package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/apperrors"
	"github.com/datapilot-ai/datapilot-engine/pkg/llm"
	"github.com/datapilot-ai/datapilot-engine/pkg/logging"
	"github.com/datapilot-ai/datapilot-engine/pkg/models"
)

// AnalyticsService is the top-level entry point for an analysis request:
// validate inputs, resolve intent and relevant columns, reduce the dataset,
// synthesize the answer. All failures surface as classified *apperrors.Error
// values.
type AnalyticsService interface {
	Analyze(ctx context.Context, query string, table *models.Table, apiKey string) (*models.AnalysisResult, error)
}

type analyticsService struct {
	clients      llm.ClientProvider
	resolver     *IntentResolver
	preprocessor *Preprocessor
	synthesizer  *AnswerSynthesizer
	logger       *zap.Logger
}

// NewAnalyticsService creates the analysis orchestrator.
func NewAnalyticsService(
	clients llm.ClientProvider,
	resolver *IntentResolver,
	preprocessor *Preprocessor,
	synthesizer *AnswerSynthesizer,
	logger *zap.Logger,
) AnalyticsService {
	return &analyticsService{
		clients:      clients,
		resolver:     resolver,
		preprocessor: preprocessor,
		synthesizer:  synthesizer,
		logger:       logger.Named("analytics"),
	}
}

// Analyze runs the full pipeline for one request. Input validation happens
// before any network call; the resolver round-trip and the synthesis
// round-trip then run sequentially, since synthesis consumes the resolver's
// output.
func (s *analyticsService) Analyze(ctx context.Context, query string, table *models.Table, apiKey string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.New(apperrors.CategoryInvalidInput, "Query is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.New(apperrors.CategoryInvalidInput, "API key is required")
	}
	if table.IsEmpty() {
		return nil, apperrors.New(apperrors.CategoryInvalidInput, "Invalid or empty data file")
	}
	if err := table.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryInvalidInput, "Invalid or empty data file", err)
	}

	client, err := s.clients.ForCredential(apiKey)
	if err != nil {
		return nil, apperrors.Classify(err)
	}

	s.logger.Info("Starting analysis",
		zap.String("query", logging.TruncateQuery(query)),
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColumnCount()))

	intent, columns := s.resolver.Resolve(ctx, query, table, client)

	preprocessed := s.preprocessor.Process(ctx, query, table, client, &intent, columns)
	s.logger.Info("Preprocessed table",
		zap.Int("rows", preprocessed.RowCount()),
		zap.Int("columns", preprocessed.ColumnCount()))

	result, err := s.synthesizer.Synthesize(ctx, query, preprocessed, client, intent)
	if err != nil {
		return nil, apperrors.Classify(err)
	}

	return result, nil
}

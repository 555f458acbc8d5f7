package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/llm"
	"github.com/datapilot-ai/datapilot-engine/pkg/models"
	"github.com/datapilot-ai/datapilot-engine/pkg/prompts"
)

// resolverResponse is the JSON shape the model is asked to produce. Both
// fields are optional on the wire; absence triggers documented defaults.
type resolverResponse struct {
	QueryIntent     *models.QueryIntent `json:"queryIntent"`
	RelevantColumns []string            `json:"relevantColumns"`
}

// IntentResolver classifies query intent and nominates relevant columns in a
// single provider round-trip. It never returns an error: a failed call or an
// unusable response degrades to the default intent plus deterministic
// keyword-based column scoring.
type IntentResolver struct {
	temperature  float64
	maxTokens    int
	sampleValues int
	logger       *zap.Logger
}

// NewIntentResolver creates an intent resolver. sampleValues controls how
// many example cells per column are shown to the model.
func NewIntentResolver(temperature float64, maxTokens, sampleValues int, logger *zap.Logger) *IntentResolver {
	return &IntentResolver{
		temperature:  temperature,
		maxTokens:    maxTokens,
		sampleValues: sampleValues,
		logger:       logger.Named("intent-resolver"),
	}
}

// Resolve returns the query intent and an ordered list of relevant column
// names for the given query and table.
func (r *IntentResolver) Resolve(ctx context.Context, query string, table *models.Table, client llm.CompletionClient) (models.QueryIntent, []string) {
	prompt := prompts.BuildIntentResolutionPrompt(query, table, r.sampleValues)

	content, err := client.Complete(ctx, prompts.ResolverSystemMessage, prompt, r.temperature, r.maxTokens)
	if err != nil {
		r.logger.Warn("Intent resolution call failed, falling back to keyword scoring", zap.Error(err))
		return models.DefaultQueryIntent(), RankRelevantColumns(query, table)
	}

	parsed, err := llm.ParseJSONResponse[resolverResponse](content)
	if err != nil {
		r.logger.Warn("Intent resolution response was not valid JSON, falling back to keyword scoring",
			zap.Error(err),
			zap.Int("response_len", len(content)))
		return models.DefaultQueryIntent(), RankRelevantColumns(query, table)
	}

	intent := models.DefaultQueryIntent()
	if parsed.QueryIntent != nil && parsed.QueryIntent.AnalysisType != "" {
		intent = *parsed.QueryIntent
	}

	columns := filterToExistingHeaders(parsed.RelevantColumns, table.Headers)
	if len(columns) == 0 {
		columns = table.Headers
	}

	r.logger.Info("Resolved query intent",
		zap.String("analysis_type", intent.AnalysisType),
		zap.String("visualization_type", intent.VisualizationType),
		zap.String("aggregation_type", intent.AggregationType),
		zap.Int("relevant_columns", len(columns)))

	return intent, columns
}

// filterToExistingHeaders drops nominated column names that do not exist in
// the table, preserving nomination order.
func filterToExistingHeaders(nominated, headers []string) []string {
	headerSet := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		headerSet[h] = struct{}{}
	}

	valid := make([]string, 0, len(nominated))
	for _, col := range nominated {
		if _, ok := headerSet[col]; ok {
			valid = append(valid, col)
		}
	}
	return valid
}

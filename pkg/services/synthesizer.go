package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/apperrors"
	"github.com/datapilot-ai/datapilot-engine/pkg/llm"
	"github.com/datapilot-ai/datapilot-engine/pkg/models"
	"github.com/datapilot-ai/datapilot-engine/pkg/prompts"
	"github.com/datapilot-ai/datapilot-engine/pkg/tabular"
)

// placeholderAnswer substitutes for responses where the model returned JSON
// but no usable answer text.
const placeholderAnswer = "The analysis was completed, but no specific answer was provided."

// synthesizerResponse is the JSON shape the model is asked to produce.
type synthesizerResponse struct {
	Answer        string                `json:"answer"`
	Visualization *models.Visualization `json:"visualization"`
}

// AnswerSynthesizer sends the preprocessed table to the provider and
// normalizes the response into an AnalysisResult. Provider failures are
// classified into the user-facing error taxonomy; malformed responses
// degrade to the raw text rather than failing.
type AnswerSynthesizer struct {
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

// NewAnswerSynthesizer creates an answer synthesizer.
func NewAnswerSynthesizer(temperature float64, maxTokens int, logger *zap.Logger) *AnswerSynthesizer {
	return &AnswerSynthesizer{
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger.Named("synthesizer"),
	}
}

// Synthesize produces the final analysis result for a query over the
// (already preprocessed) table.
func (s *AnswerSynthesizer) Synthesize(ctx context.Context, query string, table *models.Table, client llm.CompletionClient, intent models.QueryIntent) (*models.AnalysisResult, error) {
	csvData, err := tabular.ToCSV(table)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryPreprocessing, "failed to serialize table for analysis", err)
	}

	systemPrompt := prompts.BuildAnswerSystemPrompt(query, intent)

	s.logger.Info("Sending analysis request to provider",
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColumnCount()),
		zap.Int("csv_bytes", len(csvData)))

	content, err := client.Complete(ctx, systemPrompt, csvData, s.temperature, s.maxTokens)
	if err != nil {
		return nil, apperrors.Classify(err)
	}

	return s.normalize(content), nil
}

// normalize parses the model output into an AnalysisResult. No JSON at all
// means the raw text becomes the answer; JSON without an answer gets the
// placeholder; a visualization passes through only when well-formed.
func (s *AnswerSynthesizer) normalize(content string) *models.AnalysisResult {
	jsonStr, err := llm.ExtractJSON(content)
	if err != nil {
		s.logger.Warn("Provider response contained no JSON, returning raw text",
			zap.Int("response_len", len(content)))
		return &models.AnalysisResult{Answer: content}
	}

	var parsed synthesizerResponse
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		s.logger.Warn("Failed to decode provider JSON, returning raw text", zap.Error(err))
		return &models.AnalysisResult{Answer: content}
	}

	result := &models.AnalysisResult{Answer: parsed.Answer}
	if result.Answer == "" {
		result.Answer = placeholderAnswer
	}
	if parsed.Visualization.IsValid() {
		result.Visualization = parsed.Visualization
	}

	return result
}

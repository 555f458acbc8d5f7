package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/llm"
	"github.com/datapilot-ai/datapilot-engine/pkg/models"
)

// Preprocessor shrinks a table to a bounded, query-relevant subset before it
// is sent to the provider: resolve relevant columns (unless precomputed),
// project onto them, then sample rows down to the budget.
//
// Preprocessing is best-effort and fails open: any internal error is logged
// and the original, unfiltered table is returned, so a reduction failure can
// never block an answer.
type Preprocessor struct {
	resolver *IntentResolver
	maxRows  int
	logger   *zap.Logger
}

// NewPreprocessor creates a preprocessor with the given row budget.
func NewPreprocessor(resolver *IntentResolver, maxRows int, logger *zap.Logger) *Preprocessor {
	return &Preprocessor{
		resolver: resolver,
		maxRows:  maxRows,
		logger:   logger.Named("preprocess"),
	}
}

// Process reduces the table for the given query. intent and columns may be
// precomputed by a prior Resolve call; pass nil to let the preprocessor
// resolve them itself.
func (p *Preprocessor) Process(ctx context.Context, query string, table *models.Table, client llm.CompletionClient, intent *models.QueryIntent, columns []string) *models.Table {
	if intent == nil || columns == nil {
		resolved, resolvedColumns := p.resolver.Resolve(ctx, query, table, client)
		intent, columns = &resolved, resolvedColumns
	}

	p.logger.Info("Preprocessing table",
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColumnCount()),
		zap.Int("relevant_columns", len(columns)))

	filtered, err := FilterColumns(table, columns)
	if err != nil {
		p.logger.Error("Column filter failed, returning original table", zap.Error(err))
		return table
	}

	if filtered.RowCount() > p.maxRows {
		sampled := SampleRows(filtered, p.maxRows)
		p.logger.Info("Sampled table rows",
			zap.Int("from", filtered.RowCount()),
			zap.Int("to", sampled.RowCount()))
		return sampled
	}

	return filtered
}

package models

// Analysis types a query can call for.
const (
	AnalysisDescriptive = "descriptive"
	AnalysisComparative = "comparative"
	AnalysisPredictive  = "predictive"
	AnalysisExploratory = "exploratory"
)

// Visualization types the engine can suggest. VisualizationNone (or an empty
// string) means no chart is appropriate.
const (
	VisualizationBar     = "bar"
	VisualizationLine    = "line"
	VisualizationPie     = "pie"
	VisualizationScatter = "scatter"
	VisualizationNone    = "none"
)

// Aggregation types the engine can suggest.
const (
	AggregationSum     = "sum"
	AggregationAverage = "average"
	AggregationCount   = "count"
	AggregationMin     = "min"
	AggregationMax     = "max"
	AggregationNone    = "none"
)

// QueryIntent classifies what kind of analysis a query calls for. It is
// produced once per request by the intent resolver and consumed read-only by
// the answer synthesizer.
type QueryIntent struct {
	AnalysisType      string `json:"analysisType"`
	VisualizationType string `json:"visualizationType,omitempty"`
	AggregationType   string `json:"aggregationType,omitempty"`
}

// DefaultQueryIntent is the intent used when the resolver cannot classify a
// query: a descriptive analysis with no visualization and no aggregation.
func DefaultQueryIntent() QueryIntent {
	return QueryIntent{
		AnalysisType:      AnalysisDescriptive,
		VisualizationType: VisualizationNone,
		AggregationType:   AggregationNone,
	}
}

package models

// VisualizationPoint is a single name/value pair in a chart data series.
type VisualizationPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Visualization is an optional chart specification attached to an analysis
// result. Type is one of bar, line, or pie.
type Visualization struct {
	Type string               `json:"type"`
	Data []VisualizationPoint `json:"data"`
}

// IsValid reports whether the visualization is well-formed enough to return
// to the caller: a supported chart type and at least one data point.
func (v *Visualization) IsValid() bool {
	if v == nil {
		return false
	}
	switch v.Type {
	case VisualizationBar, VisualizationLine, VisualizationPie:
		return len(v.Data) > 0
	default:
		return false
	}
}

// AnalysisResult is the terminal output of an analysis request. Answer is
// always non-empty after normalization; Visualization is present only when
// the model suggested a well-formed chart.
type AnalysisResult struct {
	Answer        string         `json:"answer"`
	Visualization *Visualization `json:"visualization,omitempty"`
}

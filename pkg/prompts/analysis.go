// Package prompts builds the instruction text sent to the LLM provider.
package prompts

import (
	"fmt"
	"strings"

	"github.com/datapilot-ai/datapilot-engine/pkg/models"
)

// ResolverSystemMessage is the system instruction for the intent/column
// resolution round-trip.
const ResolverSystemMessage = "You are a data analysis assistant that helps analyze queries and identify relevant data."

// BuildIntentResolutionPrompt creates the prompt asking the model to jointly
// classify the query intent and nominate relevant columns. Each column is
// described by its name plus up to sampleValues example cells drawn from the
// first rows of the table.
func BuildIntentResolutionPrompt(query string, table *models.Table, sampleValues int) string {
	sampleSize := sampleValues
	if sampleSize > len(table.Rows) {
		sampleSize = len(table.Rows)
	}

	var descriptions []string
	for i, header := range table.Headers {
		values := make([]string, 0, sampleSize)
		for _, row := range table.Rows[:sampleSize] {
			values = append(values, formatCell(row[i]))
		}
		descriptions = append(descriptions, fmt.Sprintf("Column %q: Sample values = [%s]", header, strings.Join(values, ", ")))
	}

	var prompt strings.Builder
	prompt.WriteString("You are a data analysis assistant. Analyze the following query and dataset to:\n")
	prompt.WriteString("1. Determine the query intent (analysis type, visualization type, aggregation type)\n")
	prompt.WriteString("2. Identify which columns in the dataset are most relevant to answering the query\n\n")
	prompt.WriteString(fmt.Sprintf("Query: %q\n\n", query))
	prompt.WriteString("The dataset has the following columns and sample data:\n")
	prompt.WriteString(strings.Join(descriptions, "\n"))
	prompt.WriteString("\n\nFor the query intent, determine:\n")
	prompt.WriteString("- What type of analysis is needed (descriptive, comparative, predictive, or exploratory)\n")
	prompt.WriteString("- What type of visualization would be most appropriate (bar, line, pie, scatter, or none)\n")
	prompt.WriteString("- What type of aggregation is needed (sum, average, count, min, max, or none)\n\n")
	prompt.WriteString("For the relevant columns, consider:\n")
	prompt.WriteString("- Direct mentions of column names in the query\n")
	prompt.WriteString("- Semantic relevance of columns to the query's intent\n")
	prompt.WriteString("- Columns that would be needed for calculations or visualizations implied by the query\n\n")
	prompt.WriteString("Return your analysis as a JSON object with the following structure:\n")
	prompt.WriteString(`{
  "queryIntent": {
    "analysisType": "descriptive|comparative|predictive|exploratory",
    "visualizationType": "bar|line|pie|scatter|none",
    "aggregationType": "sum|average|count|min|max|none"
  },
  "relevantColumns": ["column1", "column2", "column3"]
}`)
	prompt.WriteString("\n\nDo not include any explanation or other text, just the JSON object.")

	return prompt.String()
}

// BuildAnswerSystemPrompt creates the system instruction for the answer
// synthesis round-trip. The user message accompanying it is the CSV-encoded
// dataset.
func BuildAnswerSystemPrompt(query string, intent models.QueryIntent) string {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("You are a data analysis assistant. Analyze the following data and answer the user's query: %q.%s\n", query, IntentSummary(intent)))
	prompt.WriteString("The data is in CSV format with the following structure:\n")
	prompt.WriteString("- First row: Column headers\n")
	prompt.WriteString("- Subsequent rows: Data values\n\n")
	prompt.WriteString("Provide a clear, concise answer. If appropriate, suggest a visualization type (bar, line, or pie) and provide the data for it.\n\n")
	prompt.WriteString("Your response should be in JSON format with the following structure:\n")
	prompt.WriteString(`{
  "answer": "Your detailed answer here",
  "visualization": {
    "type": "bar|line|pie",
    "data": [{"name": "Category1", "value": 123}, ...]
  }
}`)
	prompt.WriteString("\n\nOnly include the visualization if it makes sense for the query. If no visualization is appropriate, omit the visualization field.\n")
	prompt.WriteString("Make sure your entire response can be parsed as valid JSON.")

	return prompt.String()
}

// IntentSummary renders a human-readable summary of the query intent, e.g.
// " This is a comparative analysis that may benefit from a bar visualization
// using sum aggregation." Returns an empty string for a zero intent.
func IntentSummary(intent models.QueryIntent) string {
	if intent.AnalysisType == "" {
		return ""
	}

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf(" This is a %s analysis", intent.AnalysisType))
	if intent.VisualizationType != "" && intent.VisualizationType != models.VisualizationNone {
		summary.WriteString(fmt.Sprintf(" that may benefit from a %s visualization", intent.VisualizationType))
	}
	if intent.AggregationType != "" && intent.AggregationType != models.AggregationNone {
		summary.WriteString(fmt.Sprintf(" using %s aggregation", intent.AggregationType))
	}
	summary.WriteString(".")
	return summary.String()
}

// formatCell renders a cell value the way the model should see it.
func formatCell(cell any) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprintf("%v", cell)
}

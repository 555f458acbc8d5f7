package services

import (
	"sort"
	"strings"

	"github.com/datapilot-ai/datapilot-engine/pkg/models"
)

// columnScore is ephemeral scoring state used only during ranking.
type columnScore struct {
	header string
	score  int
}

// RankRelevantColumns scores each column name against the query's keywords
// and returns the relevant column names ranked by descending score, ties
// broken by original header order. A direct substring match of a keyword in
// the lowercased header scores 2; a partial match between a query keyword and
// a header keyword (either containing the other) scores 1.
//
// The result is never empty: when the query yields no keywords, or no header
// scores above zero, all headers are returned in their original order.
func RankRelevantColumns(query string, table *models.Table) []string {
	keywords := ExtractKeywords(query)
	if len(keywords) == 0 {
		return table.Headers
	}

	scores := make([]columnScore, 0, len(table.Headers))
	for _, header := range table.Headers {
		headerLower := strings.ToLower(header)
		headerWords := ExtractKeywords(header)

		score := 0
		for _, keyword := range keywords {
			if strings.Contains(headerLower, keyword) {
				score += 2
			}
			for _, word := range headerWords {
				if strings.Contains(word, keyword) || strings.Contains(keyword, word) {
					score++
				}
			}
		}
		scores = append(scores, columnScore{header: header, score: score})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	relevant := make([]string, 0, len(scores))
	for _, cs := range scores {
		if cs.score > 0 {
			relevant = append(relevant, cs.header)
		}
	}

	if len(relevant) == 0 {
		return table.Headers
	}
	return relevant
}

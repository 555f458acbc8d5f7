// Package services implements the dataset reduction pipeline and the
// analysis orchestration on top of it.
package services

import "strings"

// tokenSeparators is the fixed punctuation set that splits tokens, in
// addition to whitespace.
const tokenSeparators = `,.;:!?()[]{}'"`

// stopWords are common English function words that carry no signal for
// column matching.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "with": {}, "by": {}, "about": {}, "like": {}, "from": {},
	"of": {}, "as": {}, "what": {}, "which": {}, "who": {}, "whom": {},
	"whose": {}, "where": {}, "when": {}, "why": {}, "how": {}, "all": {},
	"any": {}, "both": {}, "each": {}, "few": {}, "more": {}, "most": {},
	"some": {}, "such": {}, "no": {}, "nor": {}, "not": {}, "only": {},
	"own": {}, "same": {}, "so": {}, "than": {}, "too": {}, "very": {},
	"can": {}, "will": {}, "just": {}, "should": {}, "now": {},
}

// ExtractKeywords tokenizes free text into meaningful lowercase terms: split
// on whitespace and punctuation, keep tokens longer than two characters that
// are not purely numeric and not stop words. Pure function, deterministic.
func ExtractKeywords(text string) []string {
	lowered := strings.ToLower(text)

	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' ||
			strings.ContainsRune(tokenSeparators, r)
	})

	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if isNumeric(word) {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// isNumeric reports whether s consists entirely of ASCII digits.
func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

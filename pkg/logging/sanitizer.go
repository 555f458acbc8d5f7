// Package logging keeps caller credentials and oversized payloads out of
// log output. API keys arrive with every analysis request and provider
// errors sometimes echo them back, so anything derived from a provider
// error goes through SanitizeError before logging.
package logging

import (
	"regexp"
)

const (
	// MaxQueryLogLength is the maximum length of a user query to log.
	MaxQueryLogLength = 100
	// RedactedText is the replacement text for sensitive data.
	RedactedText = "[REDACTED]"
)

var (
	// Matches api_key=xxx, apikey=xxx, key=xxx parameter forms.
	apiKeyParamPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|key)=[A-Za-z0-9-_]{8,}`)

	// Matches bearer tokens in echoed request headers.
	bearerPattern = regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9-_.]+`)

	// Matches bare OpenAI-style secret keys.
	secretKeyPattern = regexp.MustCompile(`sk-[A-Za-z0-9-_]{8,}`)
)

// SanitizeError scrubs credentials from an error message before logging.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	sanitized := err.Error()
	sanitized = apiKeyParamPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
	sanitized = secretKeyPattern.ReplaceAllString(sanitized, RedactedText)

	return sanitized
}

// TruncateQuery bounds a user query for log output. Queries are free text
// typed by users and occasionally arrive pasted-in at full-document length.
func TruncateQuery(query string) string {
	if len(query) <= MaxQueryLogLength {
		return query
	}
	return query[:MaxQueryLogLength] + "..."
}

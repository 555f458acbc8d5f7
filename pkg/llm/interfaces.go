// Package llm provides the OpenAI-compatible completion client used by the
// analysis pipeline.
package llm

import "context"

// CompletionClient is the provider boundary: one text-completion round-trip
// taking a system instruction and a user message, returning free text that is
// expected (but not guaranteed) to contain a JSON object.
// Use this interface for dependency injection to enable mocking in tests.
type CompletionClient interface {
	Complete(ctx context.Context, systemMessage, userMessage string, temperature float64, maxTokens int) (string, error)
}

// ClientProvider creates a CompletionClient for a caller-supplied credential.
// Credentials arrive with each request and are never stored, so clients are
// constructed per request rather than at startup.
type ClientProvider interface {
	ForCredential(apiKey string) (CompletionClient, error)
}

// Ensure implementations satisfy the interfaces at compile time.
var (
	_ CompletionClient = (*Client)(nil)
	_ CompletionClient = (*MockCompletionClient)(nil)
	_ ClientProvider   = (*ClientFactory)(nil)
)

package llm

import "context"

// MockCompletionClient is a configurable mock for testing code that talks to
// the provider. Set CompleteFunc to control behavior in tests.
type MockCompletionClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty string and nil error.
	CompleteFunc func(ctx context.Context, systemMessage, userMessage string, temperature float64, maxTokens int) (string, error)

	// Call tracking for verification
	CompleteCalls int
	LastSystem    string
	LastUser      string
}

// NewMockCompletionClient creates a new mock with no canned behavior.
func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{}
}

// Complete implements CompletionClient.
func (m *MockCompletionClient) Complete(ctx context.Context, systemMessage, userMessage string, temperature float64, maxTokens int) (string, error) {
	m.CompleteCalls++
	m.LastSystem = systemMessage
	m.LastUser = userMessage
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemMessage, userMessage, temperature, maxTokens)
	}
	return "", nil
}

// Reset clears call tracking.
func (m *MockCompletionClient) Reset() {
	m.CompleteCalls = 0
	m.LastSystem = ""
	m.LastUser = ""
}

// MockClientProvider returns a fixed client (or error) for any credential.
type MockClientProvider struct {
	Client CompletionClient
	Err    error
}

// ForCredential implements ClientProvider.
func (p *MockClientProvider) ForCredential(apiKey string) (CompletionClient, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Client, nil
}

var _ ClientProvider = (*MockClientProvider)(nil)

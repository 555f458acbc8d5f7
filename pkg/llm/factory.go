package llm

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ClientFactory creates completion clients bound to a caller-supplied
// credential. Endpoint and model come from server configuration; the API key
// arrives with each analysis request and is never persisted.
type ClientFactory struct {
	endpoint string
	model    string
	logger   *zap.Logger
}

// NewClientFactory creates a new factory for the configured provider.
func NewClientFactory(endpoint, model string, logger *zap.Logger) *ClientFactory {
	return &ClientFactory{
		endpoint: endpoint,
		model:    model,
		logger:   logger,
	}
}

// ForCredential creates a completion client using the given API key.
func (f *ClientFactory) ForCredential(apiKey string) (CompletionClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	return NewClient(&Config{
		Endpoint: f.endpoint,
		Model:    f.model,
		APIKey:   apiKey,
	}, f.logger)
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for datapilot-engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values. The provider
// API key is NOT configured here: it is supplied by the caller with each
// request and never stored.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// AllowedOriginsStr is a comma-separated list of CORS origins.
	AllowedOriginsStr string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173,http://localhost:3000"`

	// AllowedOrigins is the parsed list from AllowedOriginsStr (not from config file).
	AllowedOrigins []string `yaml:"-"`

	// MaxUploadBytes caps the size of uploaded dataset files.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES" env-default:"26214400"`

	// Provider configuration for the LLM completion endpoint.
	Provider ProviderConfig `yaml:"provider"`

	// Preprocess configuration for the dataset reduction pipeline.
	Preprocess PreprocessConfig `yaml:"preprocess"`
}

// ProviderConfig holds the OpenAI-compatible provider settings.
type ProviderConfig struct {
	Endpoint string `yaml:"endpoint" env:"PROVIDER_ENDPOINT" env-default:"https://api.deepseek.com/v1"`
	Model    string `yaml:"model" env:"PROVIDER_MODEL" env-default:"deepseek-reasoner"`

	// Temperature used for both provider round-trips.
	Temperature float64 `yaml:"temperature" env:"PROVIDER_TEMPERATURE" env-default:"0.2"`

	// ResolverMaxTokens bounds the intent/column-classification response.
	ResolverMaxTokens int `yaml:"resolver_max_tokens" env:"PROVIDER_RESOLVER_MAX_TOKENS" env-default:"1500"`

	// AnswerMaxTokens bounds the answer-synthesis response.
	AnswerMaxTokens int `yaml:"answer_max_tokens" env:"PROVIDER_ANSWER_MAX_TOKENS" env-default:"8000"`
}

// PreprocessConfig holds the dataset reduction settings.
type PreprocessConfig struct {
	// MaxRows is the row budget after preprocessing; larger tables are
	// sampled down to this size.
	MaxRows int `yaml:"max_rows" env:"PREPROCESS_MAX_ROWS" env-default:"200"`

	// SampleValues is how many example cell values per column are shown to
	// the model when resolving relevant columns.
	SampleValues int `yaml:"sample_values" env:"PREPROCESS_SAMPLE_VALUES" env-default:"5"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. If config.yaml does not exist, configuration comes from
// environment variables and defaults alone. The version parameter is injected
// at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOriginsStr)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Provider.Endpoint == "" {
		return fmt.Errorf("provider endpoint must not be empty")
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("provider model must not be empty")
	}
	if c.Preprocess.MaxRows < 1 {
		return fmt.Errorf("preprocess max_rows must be at least 1, got %d", c.Preprocess.MaxRows)
	}
	if c.Preprocess.SampleValues < 1 {
		return fmt.Errorf("preprocess sample_values must be at least 1, got %d", c.Preprocess.SampleValues)
	}
	return nil
}

// parseOrigins splits the comma-separated origins string, trimming whitespace
// and dropping empty entries.
func parseOrigins(value string) []string {
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

package main

import (
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/datapilot-ai/datapilot-engine/pkg/config"
	"github.com/datapilot-ai/datapilot-engine/pkg/handlers"
	"github.com/datapilot-ai/datapilot-engine/pkg/llm"
	"github.com/datapilot-ai/datapilot-engine/pkg/middleware"
	"github.com/datapilot-ai/datapilot-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("provider_endpoint", cfg.Provider.Endpoint),
		zap.String("provider_model", cfg.Provider.Model),
		zap.Int("max_rows", cfg.Preprocess.MaxRows),
		zap.Strings("allowed_origins", cfg.AllowedOrigins))

	clients := llm.NewClientFactory(cfg.Provider.Endpoint, cfg.Provider.Model, logger)
	resolver := services.NewIntentResolver(cfg.Provider.Temperature, cfg.Provider.ResolverMaxTokens, cfg.Preprocess.SampleValues, logger)
	preprocessor := services.NewPreprocessor(resolver, cfg.Preprocess.MaxRows, logger)
	synthesizer := services.NewAnswerSynthesizer(cfg.Provider.Temperature, cfg.Provider.AnswerMaxTokens, logger)
	analytics := services.NewAnalyticsService(clients, resolver, preprocessor, synthesizer, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(r)
	handlers.NewAnalyzeHandler(analytics, cfg.MaxUploadBytes, logger).RegisterRoutes(r)
	handlers.NewConvertHandler(logger).RegisterRoutes(r)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting datapilot-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger, or a development logger for local
// environments.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

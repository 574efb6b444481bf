package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/drojedanicolas-commits/drojedanicolas/cmd/mainconfig"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/api/router"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/appointments"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/catalog"
	appconfig "github.com/drojedanicolas-commits/drojedanicolas/internal/config"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/conversation"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/integration"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/leads"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/observability/metrics"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/stats"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/webchat"
	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

var errNoModelConfigured = errors.New("no model configured: set GEMINI_API_KEY or BEDROCK_MODEL_ID")

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic front-desk server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	cat, err := catalog.Load(cfg.PricesJSON, cfg.DefaultServiceCost)
	if err != nil {
		logger.Error("failed to load price catalog", "error", err)
		os.Exit(1)
	}

	seed := appointments.GenerateHistory(cfg.SeedSize, cat.Prices(), time.Now())
	repo, err := buildRepository(ctx, cfg, seed, logger)
	if err != nil {
		logger.Error("failed to initialize appointment store", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	convMetrics := metrics.NewConversationMetrics(registry)

	llm, modelID, err := buildLLMClient(ctx, cfg, convMetrics, logger)
	if err != nil {
		logger.Error("failed to initialize model client", "error", err)
		os.Exit(1)
	}

	dispatcher := conversation.NewDispatcher(repo, cat, convMetrics, logger)
	systemPrompt := conversation.SystemPrompt(conversation.PromptConfig{
		DoctorName:  cfg.DoctorName,
		Specialties: cfg.Specialties,
		WorkHours:   cfg.WorkHours,
		Catalog:     cat,
	})
	chatService := conversation.NewService(
		llm,
		modelID,
		systemPrompt,
		conversation.AppointmentTools(),
		dispatcher,
		logger,
		conversation.WithMetrics(convMetrics),
	)

	routerCfg := &router.Config{
		Logger:              logger,
		AppointmentsHandler: appointments.NewHandler(repo, cat, logger),
		StatsHandler:        stats.NewHandler(repo, logger),
		LeadsHandler:        leads.NewHandler(leads.NewStaticRepository(nil), logger),
		CatalogHandler:      catalog.NewHandler(cat),
		IntegrationHandler:  integration.NewHandler(logger),
		WebchatHandler:      webchat.NewHandler(chatService, webchat.WidgetJS, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildRepository selects the durable Redis-backed store or the in-memory
// one. Both start from the generated sample history when nothing is stored.
func buildRepository(ctx context.Context, cfg *appconfig.Config, seed []appointments.Appointment, logger *logging.Logger) (appointments.Repository, error) {
	if cfg.UseMemoryStore {
		logger.Info("using in-memory appointment store")
		return appointments.NewMemoryRepositoryWith(seed), nil
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return appointments.NewRedisRepository(ctx, client, cfg.StorageNamespace, seed, logger)
}

// buildLLMClient wires the Gemini primary and optional Bedrock fallback. The
// returned model id is the one the session passes on each request. Each
// provider is wrapped with latency metrics under its own label before the
// fallback chaining, so the recorded provider is the one that served.
func buildLLMClient(ctx context.Context, cfg *appconfig.Config, convMetrics *metrics.ConversationMetrics, logger *logging.Logger) (conversation.LLMClient, string, error) {
	var primary conversation.LLMClient
	modelID := cfg.GeminiModelID

	if cfg.GeminiAPIKey != "" {
		gemini, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			return nil, "", err
		}
		primary = conversation.NewInstrumentedLLMClient(gemini, "gemini", convMetrics)
	}

	var bedrock conversation.LLMClient
	if cfg.BedrockModelID != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		bedrock = conversation.NewInstrumentedLLMClient(
			conversation.NewBedrockLLMClient(bedrockruntime.NewFromConfig(awsCfg)),
			"bedrock",
			convMetrics,
		)
	}

	switch {
	case primary != nil && bedrock != nil:
		return conversation.NewFallbackLLMClient(primary, bedrock, cfg.BedrockModelID, logger), modelID, nil
	case primary != nil:
		return primary, modelID, nil
	case bedrock != nil:
		logger.Info("no Gemini key configured, using Bedrock as primary")
		return bedrock, cfg.BedrockModelID, nil
	default:
		return nil, "", errNoModelConfigured
	}
}

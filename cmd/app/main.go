// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-assistant-api/internal/config"
	"voice-assistant-api/internal/domain/ports/adapter"
	aiAdapters "voice-assistant-api/internal/infra/adapters/ai"
	"voice-assistant-api/internal/infra/adapters/stt"
	pg "voice-assistant-api/internal/infra/db/postgres"
	"voice-assistant-api/internal/infra/logging"
	"voice-assistant-api/internal/infra/metrics"
	red "voice-assistant-api/internal/infra/redis"
	"voice-assistant-api/internal/infra/web"
	"voice-assistant-api/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop AI, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	knowledgeRepo := pg.NewKnowledgeRepoCacheDecorator(pg.NewKnowledgeRepo(pool), redisClient, cfg.Redis.TTL)
	subRepo := pg.NewSubscriptionRepo(pool)
	interactionRepo := pg.NewInteractionRepo(pool)

	// ---- Transcription ----
	transcriber, err := stt.NewGladiaAdapter(cfg.Gladia, logger)
	if err != nil {
		log.Fatalf("gladia adapter: %v", err)
	}

	// ---- AI adapter chain (DashScope -> Gemini -> OpenAI) ----
	ai, err := buildAIAdapter(ctx, cfg)
	if err != nil {
		log.Fatalf("ai adapter: %v", err)
	}
	ai = aiAdapters.NewLimitedAI(ai, cfg.LLM.ConcurrentLimit)

	// ---- Use cases ----
	retrievalUC := usecase.NewRetrievalUseCase(knowledgeRepo, cfg.Retrieval.TopK, logger)
	answerUC := usecase.NewAnswerUseCase(ai, cfg.LLM.Model, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo)
	pipelineUC := usecase.NewPipelineUseCase(
		transcriber, retrievalUC, answerUC, subUC, interactionRepo,
		cfg.Retrieval.MinKeywordLength, logger,
	)

	// ---- HTTP server ----
	authman := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.Audience)
	srv := web.NewServer(pipelineUC, interactionRepo, authman, rateLimiter, cfg.RateLimit, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(cfg.Server.RequestTimeout),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}

// buildAIAdapter assembles the provider chain from whatever keys are
// configured. Dev mode short-circuits to the noop adapter so the whole
// pipeline runs without external calls.
func buildAIAdapter(ctx context.Context, cfg *config.Config) (adapter.AIServiceAdapter, error) {
	if cfg.Runtime.Dev && cfg.LLM.DashScopeKey == "" && cfg.LLM.GeminiKey == "" && cfg.LLM.OpenAIKey == "" {
		return aiAdapters.NewNoopAIAdapter(), nil
	}

	var providers []adapter.AIServiceAdapter
	if cfg.LLM.DashScopeKey != "" {
		a, err := aiAdapters.NewDashScopeAdapter(cfg.LLM.DashScopeKey, cfg.LLM.Model, cfg.LLM.DashScopeBaseURL, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
		if err != nil {
			return nil, err
		}
		providers = append(providers, a)
	}
	if cfg.LLM.GeminiKey != "" {
		a, err := aiAdapters.NewGeminiAdapter(ctx, cfg.LLM.GeminiKey, cfg.LLM.GeminiURL, "gemini-2.0-flash", cfg.LLM.Temperature, cfg.LLM.MaxTokens)
		if err != nil {
			return nil, err
		}
		providers = append(providers, a)
	}
	if cfg.LLM.OpenAIKey != "" {
		a, err := aiAdapters.NewOpenAIAdapter(cfg.LLM.OpenAIKey, "gpt-4o-mini", cfg.LLM.Temperature, cfg.LLM.MaxTokens)
		if err != nil {
			return nil, err
		}
		providers = append(providers, a)
	}

	switch len(providers) {
	case 0:
		return nil, errors.New("no AI provider configured: set llm.dashscope_key, llm.gemini_key or llm.openai_key")
	case 1:
		return providers[0], nil
	default:
		return aiAdapters.NewFallbackAIAdapter(providers...), nil
	}
}

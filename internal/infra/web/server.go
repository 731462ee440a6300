package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"voice-assistant-api/internal/config"
	"voice-assistant-api/internal/domain/ports/repository"
	red "voice-assistant-api/internal/infra/redis"
	"voice-assistant-api/internal/usecase"
)

type Server struct {
	pipeline  usecase.PipelineUseCase
	history   repository.InteractionRepository
	auth      *AuthManager
	limiter   *red.RateLimiter
	rateLimit config.RateLimitConfig
	log       *zerolog.Logger
}

func NewServer(
	pipeline usecase.PipelineUseCase,
	history repository.InteractionRepository,
	auth *AuthManager,
	limiter *red.RateLimiter,
	rateLimit config.RateLimitConfig,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		pipeline:  pipeline,
		history:   history,
		auth:      auth,
		limiter:   limiter,
		rateLimit: rateLimit,
		log:       logger,
	}
}

// Router assembles the public surface. Outer middleware applies to every
// route; auth and rate limiting only guard the user-facing operations.
func (s *Server) Router(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.rootHandler)
	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(s.requireAuth)
		pr.Use(s.rateLimitByUser)
		pr.Post("/process-audio/", s.processAudioHandler)
		pr.Post("/process-audio", s.processAudioHandler)
		pr.Get("/history", s.historyHandler)
	})

	return Chain(r,
		TraceID(),
		RequestLog(s.log),
		Recover(s.log),
		Timeout(requestTimeout),
	)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (s *Server) rateLimitByUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFrom(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}
		ok, err := s.limiter.Allow(r.Context(), red.UserRequestKey(claims.Subject), s.rateLimit.PerUser, s.rateLimit.Window)
		if err != nil {
			// Limiter outage should not block users.
			s.log.Warn().Err(err).Msg("rate limiter unavailable")
		} else if !ok {
			writeError(w, http.StatusTooManyRequests, "Limite de requisições excedido. Tente novamente em instantes.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/walletsavior/walletsavior/internal/adapter/http/handler"
	"github.com/walletsavior/walletsavior/internal/adapter/http/middleware"
	"github.com/walletsavior/walletsavior/internal/infrastructure/metrics"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BankAccountHandler *handler.BankAccountHandler
	TransactionHandler *handler.TransactionHandler
	SavingsHandler     *handler.SavingsHandler
	HealthHandler      *handler.HealthHandler

	// IdempotencyStore enables Idempotency-Key handling when set.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	// Authenticator requires bearer tokens on the API when set; otherwise the
	// X-User-ID header identifies the caller.
	Authenticator middleware.Authenticator

	Logger zerolog.Logger

	// Metrics enables request metrics; MetricsHandler is served at /metrics.
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Authenticator != nil {
			failures := authFailures(cfg.Metrics)
			r.Use(middleware.NewAuthMiddleware(cfg.Authenticator, failures).Wrap)
		} else {
			r.Use(middleware.HeaderIdentity)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			replays := idempotentReplays(cfg.Metrics)
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, replays).Wrap)
		}

		// Bank accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.BankAccountHandler.Create)
			r.Get("/", cfg.BankAccountHandler.List)
			r.Get("/{id}", cfg.BankAccountHandler.Get)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/{id}/savings", cfg.SavingsHandler.Get)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Post("/batch", cfg.TransactionHandler.CreateBatch)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Patch("/{id}", cfg.TransactionHandler.Rename)
		})
	})

	return r
}

func authFailures(m *metrics.Metrics) *prometheus.CounterVec {
	if m == nil {
		return nil
	}
	return m.AuthFailures
}

func idempotentReplays(m *metrics.Metrics) prometheus.Counter {
	if m == nil {
		return nil
	}
	return m.IdempotentReplays
}

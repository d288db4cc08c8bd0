package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/memore/memore/internal/handler"
	"github.com/memore/memore/internal/metrics"
	"github.com/memore/memore/internal/middleware"
	"github.com/memore/memore/internal/service"
)

// RouterConfig wires services and infrastructure into the HTTP routes.
type RouterConfig struct {
	Logger *slog.Logger

	Accounts  *service.AccountService
	Boards    *service.BoardService
	Memos     *service.MemoService
	Summaries *service.SummaryService

	Tokens   middleware.TokenParser
	Users    middleware.UserLookup
	Sessions middleware.IdentityCache // optional
	Limiter  middleware.RateLimiter   // optional

	RateLimitEnabled       bool
	RateLimitAPIPerMinute  int
	RateLimitAPIBurst      int
	RateLimitAuthPerMinute int
	RateLimitAuthBurst     int

	// Readiness probes. Nil reports the dependency as not configured.
	DB    handler.HealthChecker
	Cache handler.HealthChecker

	Metrics metrics.Snapshotter

	AllowedOrigins     []string
	MaxRequestBodySize int64
	IsDevelopment      bool
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := handler.New(logger)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Cache, logger)
	metricsHandler := handler.NewMetricsHandler(cfg.Metrics)
	accountHandler := handler.NewAccountHandler(cfg.Accounts, logger)
	userHandler := handler.NewUserHandler(cfg.Accounts, logger)
	boardHandler := handler.NewBoardHandler(cfg.Boards, cfg.Summaries, logger)
	memoHandler := handler.NewMemoHandler(cfg.Memos, logger)

	authCfg := middleware.AuthConfig{
		Logger: logger,
		Tokens: cfg.Tokens,
		Users:  cfg.Users,
		Cache:  cfg.Sessions,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:        logger,
		Limiter:       cfg.Limiter,
		Enabled:       cfg.RateLimitEnabled,
		APIPerMinute:  cfg.RateLimitAPIPerMinute,
		APIBurst:      cfg.RateLimitAPIBurst,
		AuthPerMinute: cfg.RateLimitAuthPerMinute,
		AuthBurst:     cfg.RateLimitAuthBurst,
	}
	limitByIP := middleware.RateLimitIP(rateLimitCfg)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{HSTS: !cfg.IsDevelopment}))
	r.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Probes and metrics (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Index)

		// Credential endpoints are anonymous and limited per client IP.
		r.With(limitByIP).Post("/signup", accountHandler.Signup)
		r.With(limitByIP).Post("/login", accountHandler.Login)
		r.With(limitByIP).Post("/reset-password", accountHandler.ResetPassword)
		r.With(limitByIP).Post("/users", userHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Use(middleware.RateLimitUser(rateLimitCfg))

			r.Get("/me", accountHandler.Me)
			r.Patch("/me", accountHandler.UpdateMe)
			r.Post("/me/password", accountHandler.ChangePassword)

			r.Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.Get)
			r.Patch("/users/{id}", userHandler.Update)
			r.Delete("/users/{id}", userHandler.Delete)

			r.Route("/boards", func(r chi.Router) {
				r.Get("/", boardHandler.List)
				r.Post("/", boardHandler.Create)
				r.Get("/{id}", boardHandler.Get)
				r.Patch("/{id}", boardHandler.Update)
				r.Delete("/{id}", boardHandler.Delete)
				r.Post("/{id}/summarize", boardHandler.Summarize)
				r.Post("/{id}/set-alarm", boardHandler.SetAlarm)
			})

			r.Route("/memos", func(r chi.Router) {
				r.Get("/", memoHandler.List)
				r.Post("/", memoHandler.Create)
				r.Get("/{id}", memoHandler.Get)
				r.Patch("/{id}", memoHandler.Update)
				r.Delete("/{id}", memoHandler.Delete)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

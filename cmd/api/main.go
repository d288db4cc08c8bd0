// Package main is the entrypoint for the memore API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/memore/memore/internal/auth"
	"github.com/memore/memore/internal/cache"
	"github.com/memore/memore/internal/config"
	"github.com/memore/memore/internal/metrics"
	"github.com/memore/memore/internal/repository"
	"github.com/memore/memore/internal/server"
	"github.com/memore/memore/internal/service"
	"github.com/memore/memore/internal/summarizer"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		repo.Close()
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Summarization is optional; without a key every request degrades.
	var summ service.Summarizer
	if cfg.SummarizerEnabled() {
		summ = summarizer.NewOpenAI(summarizer.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.SummaryTimeout,
		})
	} else {
		logger.Warn("OPENAI_API_KEY not set; board summarization is disabled")
	}

	recorder := metrics.NewInMemory()
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	accounts := service.NewAccountService(service.AccountConfig{
		Users:                repo,
		Hasher:               auth.NewHasher(auth.DefaultParams),
		Tokens:               tokens,
		Sessions:             cacheClient,
		Metrics:              recorder,
		Logger:               logger,
		AllowUnverifiedReset: cfg.AllowUnverifiedPasswordReset,
	})
	if cfg.AllowUnverifiedPasswordReset {
		logger.Warn("password reset by email alone is enabled", "setting", "ALLOW_UNVERIFIED_PASSWORD_RESET")
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:    logger,
		Accounts:  accounts,
		Boards:    service.NewBoardService(repo, recorder, logger),
		Memos:     service.NewMemoService(repo, repo, recorder, logger),
		Summaries: service.NewSummaryService(repo, repo, summ, cfg.SummaryTimeout, recorder, logger),

		Tokens:   tokens,
		Users:    repo,
		Sessions: cacheClient,
		Limiter:  cacheClient,

		RateLimitEnabled:       cfg.RateLimitEnabled,
		RateLimitAPIPerMinute:  cfg.RateLimitAPIPerMinute,
		RateLimitAPIBurst:      cfg.RateLimitAPIBurst,
		RateLimitAuthPerMinute: cfg.RateLimitAuthPerMinute,
		RateLimitAuthBurst:     cfg.RateLimitAuthBurst,

		DB:      repo,
		Cache:   cacheClient,
		Metrics: recorder,

		AllowedOrigins:     cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		IsDevelopment:      cfg.IsDevelopment(),
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"summarizer_model", cfg.OpenAIModel,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

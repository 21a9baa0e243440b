// Package main is the entrypoint for the SkillSwap API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/cache"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/handler"
	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/server"
	"github.com/skillswap/skillswap/internal/service"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return connectError("database", cfg.DatabaseURL, err)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		repo.Close()
		return connectError("Redis", cfg.RedisURL, err)
	}
	logger.Info("connected to Redis")

	tokens := auth.NewTokenCodec([]byte(cfg.JWTSecret), cfg.JWTTTL, cfg.JWTIssuer)
	recorder := metrics.NewInMemory()

	router := handler.NewRouter(handler.RouterConfig{
		Logger:   logger,
		Verifier: tokens,
		Metrics:  recorder,

		Users:    service.NewUserService(repo, tokens, recorder, logger),
		Skills:   service.NewSkillService(repo, cacheClient, cfg.StatsCacheTTL, recorder, logger),
		Comments: service.NewCommentService(repo, recorder, logger),
		Tags:     service.NewTagService(repo, logger),

		DB:    repo,
		Cache: cacheClient,

		RateLimiter: cacheClient,
		AuthRateLimit: middleware.RateLimitConfig{
			Enabled: cfg.RateLimitAuthEnabled,
			Scope:   "auth",
			RPS:     cfg.RateLimitAuthRPS,
			Burst:   cfg.RateLimitAuthBurst,
		},

		AllowedOrigins:     cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		IsDevelopment:      cfg.IsDevelopment(),
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
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
		"token_ttl", tokens.TTL(),
		"auth_rate_limit", cfg.RateLimitAuthEnabled,
	)

	return srv.Run(ctx)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "skillswap")
	slog.SetDefault(logger)

	return logger
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// connectError describes a failed connection without the credentials in rawURL.
func connectError(name, rawURL string, err error) error {
	return fmt.Errorf("failed to connect to %s at %s: %s", name, redactURL(rawURL), sanitizeError(err, rawURL))
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL drops the password from a connection URL, keeping the user name.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if username := parsed.User.Username(); username != "" {
			parsed.User = url.User(username)
		} else {
			parsed.User = url.User("redacted")
		}
	}

	return parsed.String()
}

// sanitizeError replaces every secret in err's text with its redacted form.
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

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/service"
)

// RouterConfig carries everything the route table needs.
type RouterConfig struct {
	Logger   *slog.Logger
	Verifier middleware.TokenVerifier
	Metrics  *metrics.InMemoryRecorder

	Users    *service.UserService
	Skills   *service.SkillService
	Comments *service.CommentService
	Tags     *service.TagService

	// Nil checkers are reported as not configured by /readyz.
	DB    HealthChecker
	Cache HealthChecker

	// RateLimiter may be nil, which disables auth rate limiting.
	RateLimiter   middleware.RateLimiter
	AuthRateLimit middleware.RateLimitConfig

	AllowedOrigins     []string
	MaxRequestBodySize int64
	IsDevelopment      bool
}

// NewRouter builds the API route table.
// Reads are public; every mutation sits behind the bearer token gate.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var recorder metrics.Recorder = metrics.NewNoop()
	if cfg.Metrics != nil {
		recorder = cfg.Metrics
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(cfg.IsDevelopment))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	health := NewHealthHandler(cfg.DB, cfg.Cache, logger)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	if cfg.Metrics != nil {
		r.Get("/metrics", NewMetricsHandler(cfg.Metrics).Metrics)
	}

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:   logger,
		Verifier: cfg.Verifier,
		Metrics:  recorder,
	})

	rl := cfg.AuthRateLimit
	rl.Logger = logger
	rl.Limiter = cfg.RateLimiter
	rl.Metrics = recorder
	if rl.Scope == "" {
		rl.Scope = "auth"
	}
	authLimit := middleware.RateLimitIP(rl)

	users := NewUserHandler(cfg.Users, logger)
	r.Route("/user", func(r chi.Router) {
		r.With(authLimit).Post("/register", users.Register)
		r.With(authLimit).Post("/login", users.Login)
		r.Get("/{id}", users.Get)
	})

	skills := NewSkillHandler(cfg.Skills, logger)
	r.Route("/skill", func(r chi.Router) {
		r.Get("/", skills.List)
		r.Get("/stats", skills.Stats)
		r.Get("/{id}", skills.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", skills.Create)
			r.Put("/{id}", skills.Update)
			r.Delete("/{id}", skills.Delete)
		})
	})

	comments := NewCommentHandler(cfg.Comments, logger)
	r.Route("/comment", func(r chi.Router) {
		r.Get("/", comments.List)
		r.Get("/{id}", comments.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", comments.Create)
			r.Put("/{id}", comments.Update)
			r.Delete("/{id}", comments.Delete)
		})
	})

	tags := NewTagHandler(cfg.Tags, logger)
	r.Route("/tag", func(r chi.Router) {
		r.Get("/", tags.List)
		r.Get("/{id}", tags.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", tags.Create)
			r.Post("/find-or-create", tags.FindOrCreate)
			r.Put("/{id}", tags.Update)
			r.Delete("/{id}", tags.Delete)
		})
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}

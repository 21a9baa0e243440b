package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/model"
)

// Gate failure codes returned in the "code" field.
const (
	CodeAuthRequired  = "AUTH_REQUIRED"
	CodeAuthMalformed = "AUTH_MALFORMED"
	CodeAuthInvalid   = "AUTH_INVALID"
)

const bearerPrefix = "Bearer "

// TokenVerifier checks a bearer credential and resolves its identity.
type TokenVerifier interface {
	Verify(token string) (*model.Identity, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Verifier TokenVerifier
	Metrics  metrics.Recorder
}

type gateRejection struct {
	code    string
	reason  string
	message string
}

var (
	rejectMissingHeader = gateRejection{CodeAuthRequired, "missing_header", "Authentication required. Please provide a valid token."}
	rejectMalformed     = gateRejection{CodeAuthMalformed, "malformed_header", "Invalid authorization format. Use: Bearer <token>"}
	rejectEmptyToken    = gateRejection{CodeAuthRequired, "empty_token", "Token is required"}
	rejectInvalidToken  = gateRejection{CodeAuthInvalid, "invalid_token", "Invalid or expired token"}
)

// Auth returns a middleware that requires a valid bearer token.
// Rejected requests get a 403 and never reach next.
// On success the identity is stored with auth.ContextWithIdentity.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	reject := func(w http.ResponseWriter, r *http.Request, rej gateRejection) {
		logger.Warn("authentication failed",
			slog.String("reason", rej.reason),
			slog.String("ip", clientIP(r)),
			slog.String("endpoint", r.Method+" "+r.URL.Path),
			slog.String("request_id", GetRequestID(r.Context())),
		)
		recorder.IncAuthFailure(rej.code)
		writeJSONError(w, http.StatusForbidden, rej.message, rej.code)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, r, rejectMissingHeader)
				return
			}

			if !strings.HasPrefix(header, bearerPrefix) {
				reject(w, r, rejectMalformed)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if token == "" {
				reject(w, r, rejectEmptyToken)
				return
			}

			identity, err := cfg.Verifier.Verify(token)
			if err != nil || identity == nil {
				reject(w, r, rejectInvalidToken)
				return
			}

			logger.Debug("authentication successful",
				slog.Int64("user_id", identity.UserID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			recordIdentity(r.Context(), identity.UserID)
			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

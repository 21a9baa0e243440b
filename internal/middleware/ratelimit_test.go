package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skillswap/skillswap/internal/cache"
	"github.com/skillswap/skillswap/internal/metrics"
)

type fakeLimiter struct {
	result *cache.RateLimitResult
	err    error
	scope  string
	ip     string
}

func (f *fakeLimiter) CheckIPRateLimit(_ context.Context, scope, ip string, _ float64, _ int) (*cache.RateLimitResult, error) {
	f.scope = scope
	f.ip = ip
	return f.result, f.err
}

func TestRateLimitIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		enabled     bool
		limiter     *fakeLimiter
		wantStatus  int
		wantReached bool
		wantRetry   string
	}{
		{
			name:        "allowed",
			enabled:     true,
			limiter:     &fakeLimiter{result: &cache.RateLimitResult{Allowed: true, Remaining: 4}},
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
		{
			name:       "denied",
			enabled:    true,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: false, RetryAfter: 3 * time.Second}},
			wantStatus: http.StatusTooManyRequests,
			wantRetry:  "3",
		},
		{
			name:       "denied with sub-second retry",
			enabled:    true,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: false}},
			wantStatus: http.StatusTooManyRequests,
			wantRetry:  "1",
		},
		{
			name:        "limiter error fails open",
			enabled:     true,
			limiter:     &fakeLimiter{result: &cache.RateLimitResult{Allowed: true}, err: errors.New("redis down")},
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
		{
			name:        "disabled",
			enabled:     false,
			limiter:     &fakeLimiter{result: &cache.RateLimitResult{Allowed: false}},
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := metrics.NewInMemory()
			reached := false
			handler := RateLimitIP(RateLimitConfig{
				Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
				Limiter: tt.limiter,
				Metrics: recorder,
				Enabled: tt.enabled,
				Scope:   "auth",
				RPS:     1,
				Burst:   5,
			})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
			req.RemoteAddr = "203.0.113.7:51234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if reached != tt.wantReached {
				t.Errorf("reached = %v, want %v", reached, tt.wantReached)
			}
			if got := rec.Header().Get("Retry-After"); got != tt.wantRetry {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetry)
			}
			if tt.enabled && (tt.limiter.scope != "auth" || tt.limiter.ip != "203.0.113.7") {
				t.Errorf("limiter called with scope=%q ip=%q", tt.limiter.scope, tt.limiter.ip)
			}
			wantLimited := uint64(0)
			if tt.wantStatus == http.StatusTooManyRequests {
				wantLimited = 1
			}
			if recorder.Snapshot().RateLimited != wantLimited {
				t.Errorf("RateLimited = %d, want %d", recorder.Snapshot().RateLimited, wantLimited)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		tt := tt
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if got := clientIP(req); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}

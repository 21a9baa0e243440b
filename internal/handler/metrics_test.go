package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/skillswap/skillswap/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewInMemory()
	recorder.IncAuthFailure("AUTH_INVALID")
	recorder.IncAuthFailure("AUTH_INVALID")
	recorder.IncAuthFailure("AUTH_REQUIRED")
	recorder.IncOwnershipDenied("skill")
	recorder.IncSkillCreated()
	recorder.ObserveStatsDuration(1500 * time.Millisecond)

	rec := httptest.NewRecorder()
	NewMetricsHandler(recorder).Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}

	body := rec.Body.String()
	for _, line := range []string{
		`skillswap_auth_failures_total{code="AUTH_INVALID"} 2`,
		`skillswap_auth_failures_total{code="AUTH_REQUIRED"} 1`,
		`skillswap_ownership_denied_total{resource="skill"} 1`,
		`skillswap_skills_total{op="created"} 1`,
		`skillswap_stats_duration_seconds_count 1`,
		`skillswap_stats_duration_seconds_sum 1.500000`,
	} {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("missing line %q in:\n%s", line, body)
		}
	}

	if strings.Index(body, `code="AUTH_INVALID"`) > strings.Index(body, `code="AUTH_REQUIRED"`) {
		t.Error("labeled lines should be sorted")
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewMetricsHandler(nil).Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

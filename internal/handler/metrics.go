package handler

import (
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/skillswap/skillswap/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeLabeled(w, "skillswap_auth_failures_total", "code", snap.AuthFailures)
	writeLabeled(w, "skillswap_ownership_denied_total", "resource", snap.OwnershipDenied)
	writeMetric(w, "skillswap_login_failures_total %d\n", snap.LoginFailures)
	writeMetric(w, "skillswap_rate_limited_total %d\n", snap.RateLimited)

	writeMetric(w, "skillswap_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "skillswap_skills_total{op=\"created\"} %d\n", snap.SkillsCreated)
	writeMetric(w, "skillswap_skills_total{op=\"updated\"} %d\n", snap.SkillsUpdated)
	writeMetric(w, "skillswap_skills_total{op=\"deleted\"} %d\n", snap.SkillsDeleted)
	writeMetric(w, "skillswap_comments_total{op=\"created\"} %d\n", snap.CommentsCreated)
	writeMetric(w, "skillswap_comments_total{op=\"updated\"} %d\n", snap.CommentsUpdated)
	writeMetric(w, "skillswap_comments_total{op=\"deleted\"} %d\n", snap.CommentsDeleted)

	writeMetric(w, "skillswap_stats_cache_hits_total %d\n", snap.StatsCacheHits)
	writeMetric(w, "skillswap_stats_cache_misses_total %d\n", snap.StatsCacheMisses)
	writeMetric(w, "skillswap_stats_duration_seconds_count %d\n", snap.StatsDurationCount)
	writeMetric(w, "skillswap_stats_duration_seconds_sum %.6f\n", float64(snap.StatsDurationTotalNs)/1e9)
}

// writeLabeled writes one line per label value, sorted for stable output.
func writeLabeled(w io.Writer, name, label string, values map[string]uint64) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeMetric(w, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeMetric(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

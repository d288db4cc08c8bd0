package handler

import (
	"fmt"
	"net/http"

	"github.com/memore/memore/internal/metrics"
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

	writeMetric(w, "memore_signups_total %d\n", snap.Signups)
	writeMetric(w, "memore_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "memore_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)
	writeMetric(w, "memore_password_changes_total %d\n", snap.PasswordsChanged)

	writeMetric(w, "memore_boards_created_total %d\n", snap.BoardsCreated)
	writeMetric(w, "memore_boards_deleted_total %d\n", snap.BoardsDeleted)
	writeMetric(w, "memore_memos_created_total %d\n", snap.MemosCreated)
	writeMetric(w, "memore_memos_deleted_total %d\n", snap.MemosDeleted)

	writeMetric(w, "memore_summaries_total{status=\"success\"} %d\n", snap.SummariesSucceeded)
	writeMetric(w, "memore_summaries_total{status=\"skipped\"} %d\n", snap.SummariesSkipped)
	writeMetric(w, "memore_summaries_total{status=\"failed\"} %d\n", snap.SummariesFailed)
	writeMetric(w, "memore_summary_duration_seconds_count %d\n", snap.SummaryDurationCount)
	writeMetric(w, "memore_summary_duration_seconds_sum %.6f\n", float64(snap.SummaryDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

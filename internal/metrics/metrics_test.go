package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsExposure(t *testing.T) {
	AnalysisRuns.Inc()
	AnalysisErrors.WithLabelValues("not_found").Inc()
	Verdicts.WithLabelValues("LOW").Inc()
	PagesFetched.WithLabelValues("badges").Inc()
	PageFailures.WithLabelValues("inventory").Inc()
	PrivateInventories.Inc()
	IncAPIRetry("/test")
	IncCommandRun("analyze")
	IncCommandError("analyze")
	ObserveAnalysisDuration(time.Now().Add(-1500 * time.Millisecond))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, m := range []string{
		"altlens_analysis_runs_total",
		"altlens_analysis_errors_total",
		"altlens_analysis_duration_seconds",
		"altlens_verdicts_total",
		"altlens_pages_fetched_total",
		"altlens_page_failures_total",
		"altlens_private_inventories_total",
		"altlens_api_retries_total",
		"altlens_command_runs_total",
		"altlens_command_errors_total",
	} {
		if !strings.Contains(body, m) {
			t.Fatalf("expected metric %s in body", m)
		}
	}
}

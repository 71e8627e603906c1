package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "altlens_analysis_runs_total",
		Help: "Total analysis runs",
	})
	AnalysisErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "altlens_analysis_errors_total",
		Help: "Analysis runs that ended without a verdict, by error kind",
	}, []string{"kind"})
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "altlens_analysis_duration_seconds",
		Help:    "Analysis duration seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
	Verdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "altlens_verdicts_total",
		Help: "Verdicts produced, by category",
	}, []string{"category"})
	PagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "altlens_pages_fetched_total",
		Help: "Pages retrieved, by collection",
	}, []string{"collection"})
	PageFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "altlens_page_failures_total",
		Help: "Page requests that ended a pagination walk early, by collection",
	}, []string{"collection"})
	PrivateInventories = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "altlens_private_inventories_total",
		Help: "Analyses that found a private inventory",
	})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "altlens_api_retries_total",
		Help: "Total API retry attempts",
	}, []string{"endpoint"})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "altlens_command_runs_total",
		Help: "CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "altlens_command_errors_total",
		Help: "CLI command failures",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(
		AnalysisRuns, AnalysisErrors, AnalysisDuration, Verdicts,
		PagesFetched, PageFailures, PrivateInventories, APIRetries,
		CommandRuns, CommandErrors,
	)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, mux) }()
}

// ObserveAnalysisDuration records a run duration.
func ObserveAnalysisDuration(start time.Time) {
	AnalysisDuration.Observe(time.Since(start).Seconds())
}

// IncAPIRetry increments the retry counter for an endpoint.
func IncAPIRetry(endpoint string) { APIRetries.WithLabelValues(endpoint).Inc() }

func IncCommandRun(cmd string)   { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

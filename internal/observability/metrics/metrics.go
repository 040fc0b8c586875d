package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "talentdesk_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	uploadRequests *prometheus.CounterVec
	uploadErrors   *prometheus.CounterVec
	uploadLatency  *prometheus.HistogramVec

	dryRunTotal *prometheus.CounterVec

	commitTotal   *prometheus.CounterVec
	commitLatency *prometheus.HistogramVec
	commitRows    *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	sessionsExpired prometheus.Counter
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		uploadRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_uploads_total",
				Help: "Total import uploads by result",
			},
			[]string{"result"},
		)
		uploadErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_upload_errors_total",
				Help: "Total import upload errors by reason",
			},
			[]string{"reason"},
		)
		uploadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "import_upload_latency_seconds",
				Help:    "Import upload parse latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		dryRunTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_dry_runs_total",
				Help: "Total dry-run validations by result",
			},
			[]string{"result"},
		)

		commitTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_commits_total",
				Help: "Total import commits by mode and result",
			},
			[]string{"mode", "result"},
		)
		commitLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "import_commit_latency_seconds",
				Help:    "Import commit latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode", "result"},
		)
		commitRows = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_commit_rows_total",
				Help: "Total committed rows by disposition",
			},
			[]string{"disposition"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calendar_export_total",
				Help: "Total calendar export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "calendar_export_latency_seconds",
				Help:    "Calendar export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		sessionsExpired = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_sessions_expired_total",
				Help: "Total import sessions dropped by expiry",
			},
		)

		prometheus.MustRegister(
			uploadRequests,
			uploadErrors,
			uploadLatency,
			dryRunTotal,
			commitTotal,
			commitLatency,
			commitRows,
			exportTotal,
			exportLatency,
			sessionsExpired,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveUpload records upload parse duration and result.
func ObserveUpload(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if uploadRequests != nil {
		uploadRequests.WithLabelValues(result).Inc()
	}
	if uploadLatency != nil {
		uploadLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncUploadError increments upload error counter.
func IncUploadError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if uploadErrors != nil {
		uploadErrors.WithLabelValues(reason).Inc()
	}
}

// IncDryRun increments dry-run counter.
func IncDryRun(result string) {
	if result == "" {
		result = resultSuccess
	}
	if dryRunTotal != nil {
		dryRunTotal.WithLabelValues(result).Inc()
	}
}

// ObserveCommit records commit latency and result.
func ObserveCommit(mode, result string, duration time.Duration) {
	if mode == "" {
		mode = "merge"
	}
	if result == "" {
		result = resultSuccess
	}
	if commitTotal != nil {
		commitTotal.WithLabelValues(mode, result).Inc()
	}
	if commitLatency != nil {
		commitLatency.WithLabelValues(mode, result).Observe(duration.Seconds())
	}
}

// AddCommitRows counts committed rows by disposition.
func AddCommitRows(disposition string, count int) {
	if count <= 0 {
		return
	}
	if commitRows != nil {
		commitRows.WithLabelValues(disposition).Add(float64(count))
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// AddSessionsExpired counts expired sessions.
func AddSessionsExpired(count int) {
	if count <= 0 {
		return
	}
	if sessionsExpired != nil {
		sessionsExpired.Add(float64(count))
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)

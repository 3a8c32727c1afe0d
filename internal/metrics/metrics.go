// Package metrics exposes the dashboard's prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ dashboard.Recorder = (*Collector)(nil)

// Collector records core telemetry and HTTP request metrics.
type Collector struct {
	recoveries      *prometheus.CounterVec
	rootResolutions *prometheus.CounterVec
	profileLookups  *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		recoveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "songranker_recovery_links_total",
			Help: "Startup recovery link handling by outcome",
		}, []string{"outcome"}),
		rootResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "songranker_root_resolutions_total",
			Help: "Root route resolutions by target view",
		}, []string{"target"}),
		profileLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "songranker_profile_lookups_total",
			Help: "Remote member profile lookups by result",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "songranker_http_requests_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "songranker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.recoveries,
		c.rootResolutions,
		c.profileLookups,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordRecovery(outcome dashboard.RecoveryOutcome) {
	c.recoveries.WithLabelValues(outcome.String()).Inc()
}

// RecordRootResolution counts by target kind; member keys are not used as
// labels.
func (c *Collector) RecordRootResolution(target dashboard.Target) {
	c.rootResolutions.WithLabelValues(target.Kind.String()).Inc()
}

func (c *Collector) RecordProfileLookup(result dashboard.LookupResult) {
	c.profileLookups.WithLabelValues(string(result)).Inc()
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

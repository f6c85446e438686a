package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReportsBuilt counts assembled risk reports by kind (full|rug_scan)
	ReportsBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenguard_reports_built_total",
			Help: "Total number of risk reports assembled",
		},
		[]string{"kind"},
	)

	// UpstreamRequests counts external API calls by provider and outcome
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenguard_upstream_requests_total",
			Help: "Total number of upstream API calls",
		},
		[]string{"provider", "status"}, // status: success|error
	)

	// UpstreamLatency tracks external API call latency
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tokenguard_upstream_latency_seconds",
			Help:    "Upstream API call latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider"},
	)

	// ActiveSessions tracks live conversation sessions
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tokenguard_active_sessions",
			Help: "Number of conversation sessions currently in memory",
		},
	)

	// RejectedAddresses counts address submissions that failed validation
	RejectedAddresses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tokenguard_rejected_addresses_total",
			Help: "Total number of address submissions rejected by validation",
		},
	)
)

// Register registers all collectors with the default registry.
// Call once at startup.
func Register() {
	prometheus.MustRegister(
		ReportsBuilt,
		UpstreamRequests,
		UpstreamLatency,
		ActiveSessions,
		RejectedAddresses,
	)
}

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path"},
	)

	// DistanceLookups counts provider queries by outcome (ok, unavailable, error).
	DistanceLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "distance_lookups_total", Help: "Distance provider lookups by outcome."},
		[]string{"outcome"},
	)
	DistanceLookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "distance_lookup_duration_seconds", Help: "Distance provider lookup latency in seconds.", Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10}},
	)

	// RoutesComputed counts route calculations by result (ok, error).
	RoutesComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routes_computed_total", Help: "Route calculations by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// Register adds all collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(DistanceLookups)
		Registry.MustRegister(DistanceLookupDuration)
		Registry.MustRegister(RoutesComputed)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	Register()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	// Session Metrics
	ScopesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_scopes_created_total",
			Help: "Total number of client scopes issued",
		},
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_registrations_total",
			Help: "Registration attempts by result",
		},
		[]string{"result"},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	// Cart Metrics
	CartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Cart mutations by operation",
		},
		[]string{"operation"},
	)

	// Catalog Metrics
	CatalogOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_operations_total",
			Help: "Catalog mutations by operation",
		},
		[]string{"operation"},
	)
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMetricsMiddleware records request metrics labelled by route template so
// ids in paths do not blow up cardinality.
func HTTPMetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			HTTPRequestsInFlight.Inc()
			defer HTTPRequestsInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			path := "unmatched"
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}
			status := strconv.Itoa(rec.status)

			HTTPRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

package obs

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// defaultBucketsMs covers typical API latencies from fast cache hits up to
// slow PDF renders.
var defaultBucketsMs = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// HTTPMetrics bundles the per-request Prometheus collectors.
type HTTPMetrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewHTTPMetrics builds and registers the HTTP collectors. A nil registerer
// uses the default registry; re-registering an identical collector is not an
// error so tests can construct metrics repeatedly.
func NewHTTPMetrics(namespace string, buckets []float64, reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	switch {
	case len(buckets) == 0:
		buckets = defaultBucketsMs
	default:
		sort.Float64s(buckets)
	}

	m := &HTTPMetrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   buckets,
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
	}
	for _, collector := range []prometheus.Collector{m.ReqTotal, m.ReqDur, m.InFlight} {
		err := reg.Register(collector)
		if err == nil {
			continue
		}
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			panic(err)
		}
	}
	return m
}

// ParseBucketsCSV parses "5,10,50" style bucket boundaries in milliseconds.
// Blank or non-positive entries are skipped; an empty input yields nil so
// callers fall back to the defaults.
func ParseBucketsCSV(csv string) []float64 {
	fields := strings.Split(csv, ",")
	var out []float64
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil || v <= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// DurationMillis converts a duration to fractional milliseconds.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

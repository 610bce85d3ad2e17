package bootstrap

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusDNSLookups          *prometheus.CounterVec
	prometheusDNSLookupRetries    prometheus.Counter
	prometheusDNSLookupDuration   prometheus.Histogram
	prometheusBootstrapCandidates *prometheus.GaugeVec
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusDNSLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "examd",
			Subsystem: "bootstrap",
			Name:      "dns_lookups",
			Help:      "Number of DNS seed lookups by result (ok, not_found, failed)",
		},
		[]string{"result"},
	)

	prometheusDNSLookupRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "examd",
			Subsystem: "bootstrap",
			Name:      "dns_lookup_retries",
			Help:      "Number of repeated DNS seed lookup attempts",
		},
	)

	prometheusDNSLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "examd",
			Subsystem: "bootstrap",
			Name:      "dns_lookup_seconds",
			Help:      "Duration of single DNS seed lookup attempts",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	prometheusBootstrapCandidates = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "examd",
			Subsystem: "bootstrap",
			Name:      "candidates",
			Help:      "Number of bootstrap candidates found on the last run, per network",
		},
		[]string{"network"},
	)
}

package chaincfg

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusRegistrySelect *prometheus.CounterVec
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusRegistrySelect = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "examd",
			Subsystem: "chaincfg",
			Name:      "select",
			Help:      "Number of network selections, per network",
		},
		[]string{"network"},
	)
}

package timezones

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "tzselect"

// Metrics records catalog builds and searches. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	builds   *prometheus.CounterVec
	size     prometheus.Gauge
	searches *prometheus.CounterVec
	results  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "catalog_builds_total",
			Help:      "Timezone catalog builds by result.",
		}, []string{"result"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "catalog_records",
			Help:      "Records in the most recently built timezone catalog.",
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "searches_total",
			Help:      "Timezone searches by kind (empty, text, error).",
		}, []string{"kind"}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "search_results",
			Help:      "Records returned per timezone search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.builds, m.size, m.searches, m.results} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("timezones: register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) observeBuild(records int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.builds.WithLabelValues("error").Inc()
		return
	}
	m.builds.WithLabelValues("ok").Inc()
	m.size.Set(float64(records))
}

func (m *Metrics) observeSearch(kind string, results int) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(kind).Inc()
	if kind != searchKindError {
		m.results.Observe(float64(results))
	}
}

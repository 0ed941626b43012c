package metrics

import (
	"github.com/lk2023060901/search-api/internal/websearch/types"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports provider call statistics to Prometheus.
type Collector struct {
	outcomes *prometheus.CounterVec
	errors   *prometheus.CounterVec
	skips    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	results  *prometheus.HistogramVec
}

// NewCollector registers the search metrics on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "search",
				Name:      "provider_outcomes_total",
				Help:      "Provider task outcomes by provider and status",
			},
			[]string{"provider", "status"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "search",
				Name:      "provider_errors_total",
				Help:      "Provider call failures by provider and error code",
			},
			[]string{"provider", "code"},
		),
		skips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "search",
				Name:      "provider_skipped_total",
				Help:      "Provider calls skipped for lack of credentials",
			},
			[]string{"provider"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "search",
				Name:      "provider_duration_seconds",
				Help:      "Provider task duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"provider"},
		),
		results: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "search",
				Name:      "provider_results",
				Help:      "Number of results returned per provider task",
				Buckets:   prometheus.LinearBuckets(0, 2, 11),
			},
			[]string{"provider"},
		),
	}

	for _, col := range []prometheus.Collector{c.outcomes, c.errors, c.skips, c.latency, c.results} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) RecordSkip(provider types.ProviderID) {
	c.skips.WithLabelValues(string(provider)).Inc()
}

func (c *Collector) RecordError(provider types.ProviderID, code string) {
	c.errors.WithLabelValues(string(provider), code).Inc()
}

func (c *Collector) RecordOutcome(o types.SourceOutcome) {
	p := string(o.Provider)
	c.outcomes.WithLabelValues(p, string(o.Status)).Inc()
	c.latency.WithLabelValues(p).Observe(o.Took.Seconds())
	c.results.WithLabelValues(p).Observe(float64(o.Results))
}

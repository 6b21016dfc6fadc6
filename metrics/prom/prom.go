// Package prom exports engine metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/tcam/tcam"
)

// Adapter implements tcam.Metrics and exports Prometheus counters and
// gauges. Safe for concurrent use; all Prometheus metric types are
// goroutine-safe.
type Adapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	evicts  *prometheus.CounterVec
	entries prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache-tier hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache-tier misses (full table scans)",
			ConstLabels: constLabels,
		}),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Cache-line and aged-entry removals by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "entries",
			Help:        "Occupied table slots",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.entries)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter with a reason label.
func (a *Adapter) Evict(r tcam.EvictReason) {
	a.evicts.WithLabelValues(reason(r)).Inc()
}

// Size updates the occupancy gauge.
func (a *Adapter) Size(entries int) {
	a.entries.Set(float64(entries))
}

// reason maps EvictReason to a stable label value.
func reason(r tcam.EvictReason) string {
	switch r {
	case tcam.EvictInvalidate:
		return "invalidate"
	case tcam.EvictAged:
		return "aged"
	default:
		return "replace"
	}
}

// Compile-time check: ensure Adapter implements tcam.Metrics.
var _ tcam.Metrics = (*Adapter)(nil)

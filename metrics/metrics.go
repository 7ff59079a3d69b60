// Package metrics bundles the Prometheus collectors for the live map.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes recorded on map_refresh_total.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeStale = "stale"
)

// MapCollector records refresh activity and the current marker count.
type MapCollector struct {
	gatherer prometheus.Gatherer

	Refreshes       *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	Markers         prometheus.Gauge
}

// NewMapCollector registers the map metrics against reg, defaulting to the
// global registry when nil. Re-registering returns the existing collectors.
func NewMapCollector(reg prometheus.Registerer) (*MapCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	refreshes, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "map_refresh_total",
		Help: "Map refreshes by outcome (ok, error, stale).",
	}, []string{"outcome"}), "map_refresh_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "map_refresh_duration_seconds",
		Help:    "Time spent fetching incidents for a map refresh.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}), "map_refresh_duration_seconds")
	if err != nil {
		return nil, err
	}

	markers, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "map_markers",
		Help: "Markers currently attached to the map.",
	}), "map_markers")
	if err != nil {
		return nil, err
	}

	return &MapCollector{
		gatherer:        gatherer,
		Refreshes:       refreshes,
		RefreshDuration: duration,
		Markers:         markers,
	}, nil
}

// ObserveRefresh records one finished refresh. Safe on a nil collector.
func (c *MapCollector) ObserveRefresh(outcome string, took time.Duration) {
	if c == nil {
		return
	}
	c.Refreshes.WithLabelValues(outcome).Inc()
	if outcome != OutcomeStale {
		c.RefreshDuration.Observe(took.Seconds())
	}
}

func (c *MapCollector) SetMarkers(n int) {
	if c == nil {
		return
	}
	c.Markers.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *MapCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}

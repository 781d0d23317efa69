// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides a handle onto the prometheus registry a zone publishes
// to. It exists so callers that only need Register don't have to import
// prometheus directly.
type Metrics struct {
	Registry prometheus.Registerer
}

// NewMetrics wraps reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Registry: reg,
	}
}

// Register registers a prometheus collector.
func (m *Metrics) Register(collector prometheus.Collector) error {
	return m.Registry.Register(collector)
}

// ZoneMetrics is the set of collectors a zone.Zone reports against during
// its scheduler tick (§4.8): how long a tick took, how many AIs it covered,
// and how many tree executions ended in Exception.
type ZoneMetrics struct {
	tickDuration prometheus.Histogram
	aiCount      prometheus.Gauge
	exceptions   prometheus.Counter
}

// NewZoneMetrics creates and registers a ZoneMetrics against reg. namespace
// is used as the metric name prefix (e.g. "aizone").
func NewZoneMetrics(namespace string, reg prometheus.Registerer) (*ZoneMetrics, error) {
	m := &ZoneMetrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock time spent in one zone.Update call.",
			Buckets:   prometheus.DefBuckets,
		}),
		aiCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ai_count",
			Help:      "Number of AIs owned by the zone as of the last tick.",
		}),
		exceptions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tree_exceptions_total",
			Help:      "Number of tree executions that returned StatusException.",
		}),
	}
	for _, c := range []prometheus.Collector{m.tickDuration, m.aiCount, m.exceptions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveTick records the duration of one completed zone.Update call and the
// number of AIs it covered.
func (m *ZoneMetrics) ObserveTick(d time.Duration, aiCount int) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(d.Seconds())
	m.aiCount.Set(float64(aiCount))
}

// IncException records one tree execution that returned StatusException.
func (m *ZoneMetrics) IncException() {
	if m == nil {
		return
	}
	m.exceptions.Inc()
}

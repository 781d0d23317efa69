// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestAveragerTracksMean(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewAverager("test_avg", "test values", reg)
	require.NoError(t, err)
	require.Equal(t, float64(0), a.Read())

	a.Observe(2)
	a.Observe(4)
	a.Observe(6)
	require.Equal(t, float64(4), a.Read())
}

func TestCounterIncAndAdd(t *testing.T) {
	c := NewCounter()
	c.Inc()
	c.Add(4)
	require.Equal(t, int64(5), c.Read())
}

func TestGaugeSetAndAdd(t *testing.T) {
	g := NewGauge()
	g.Set(10)
	g.Add(-3)
	require.Equal(t, float64(7), g.Read())
}

func TestRegistryRoundTrips(t *testing.T) {
	r := NewRegistry()

	c := r.NewCounter("ticks")
	c.Inc()
	got, err := r.GetCounter("ticks")
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Read())

	g := r.NewGauge("ai_count")
	g.Set(5)
	gotGauge, err := r.GetGauge("ai_count")
	require.NoError(t, err)
	require.Equal(t, float64(5), gotGauge.Read())

	av := r.NewAverager("latency")
	av.Observe(3)
	gotAv, err := r.GetAverager("latency")
	require.NoError(t, err)
	require.Equal(t, float64(3), gotAv.Read())

	_, err = r.GetCounter("missing")
	require.Error(t, err)
}

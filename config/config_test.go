// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aizone/behaviortree/aggro"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Valid())
}

func TestValidRejectsBadFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  ZoneConfig
	}{
		{"zero workers", ZoneConfig{Workers: 0, TickInterval: time.Second}},
		{"negative workers", ZoneConfig{Workers: -1, TickInterval: time.Second}},
		{"zero tick interval", ZoneConfig{Workers: 1, TickInterval: 0}},
		{"negative decay", ZoneConfig{Workers: 1, TickInterval: time.Second, DefaultAggroReducePerSec: -1}},
		{"negative min aggro", ZoneConfig{Workers: 1, TickInterval: time.Second, DefaultAggroMinAggro: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.cfg.Valid())
		})
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	cfg := ZoneConfig{
		Workers:                  4,
		TickInterval:             50 * time.Millisecond,
		RNGSeed:                  42,
		DefaultAggroMode:         aggro.Value,
		DefaultAggroReducePerSec: 1.5,
		DefaultAggroMinAggro:     0.25,
	}
	path := filepath.Join(t.TempDir(), "zone.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zone.yaml")
	require.NoError(t, Save(path, ZoneConfig{Workers: 0, TickInterval: time.Second}))

	_, err := Load(path)
	require.Error(t, err)
}

func TestRuntimeDefaultsWithoutInitialize(t *testing.T) {
	require.Equal(t, Default(), Runtime())
}

func TestInitializeRuntimeRejectsInvalidConfig(t *testing.T) {
	err := InitializeRuntime(ZoneConfig{Workers: 0})
	require.Error(t, err)
}

func TestInitializeRuntimeThenRuntimeReflectsIt(t *testing.T) {
	cfg := ZoneConfig{Workers: 3, TickInterval: 200 * time.Millisecond, RNGSeed: 7}
	require.NoError(t, InitializeRuntime(cfg))
	require.Equal(t, cfg, Runtime())

	require.NoError(t, InitializeRuntime(Default()))
}

// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the runtime-tunable parameters of a zone: its worker
// pool size, tick interval, RNG seed, and default aggro decay settings. It
// mirrors the teacher's Parameters/Valid()/runtime-singleton shape, but
// reads and writes YAML (gopkg.in/yaml.v3) instead of JSON, since the
// behaviour-tree host loads trees and configuration from the same kind of
// human-edited file.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aizone/behaviortree/aggro"
)

// ZoneConfig holds the parameters a host supplies when constructing a
// zone.Zone and the AIs it owns.
type ZoneConfig struct {
	// Workers is the number of concurrent tick workers (§4.8/§5).
	Workers int `json:"workers" yaml:"workers"`
	// TickInterval is how often the host calls zone.Update in its own
	// scheduling loop; the runtime itself imposes no timeout (§4.8).
	TickInterval time.Duration `json:"tickInterval" yaml:"tickInterval"`
	// RNGSeed seeds the per-zone RNG so Wander/RandomSelector/Random runs
	// are reproducible in tests (§9's "inject a per-AI or per-zone RNG").
	RNGSeed uint64 `json:"rngSeed" yaml:"rngSeed"`

	// DefaultAggroMode/DefaultAggroReducePerSec/DefaultAggroMinAggro
	// configure the decay every zone.AI's aggro.Manager applies to aggro
	// entries it creates (via aggro.Manager.SetReduceByRatio/
	// SetReduceByValue, applied by zone.Zone when the AI is added — see
	// zone.Zone.SetAggroDefaults). DefaultAggroMinAggro only applies in
	// Ratio mode. The zero value (Disabled, 0, 0) disables decay, matching
	// aggro.New's own default.
	DefaultAggroMode         aggro.Mode `json:"defaultAggroMode" yaml:"defaultAggroMode"`
	DefaultAggroReducePerSec float32    `json:"defaultAggroReducePerSec" yaml:"defaultAggroReducePerSec"`
	DefaultAggroMinAggro     float32    `json:"defaultAggroMinAggro" yaml:"defaultAggroMinAggro"`
}

// Default returns the configuration a zone uses when the host supplies
// none: one worker, a 100ms tick, an arbitrary fixed seed, and disabled
// aggro decay.
func Default() ZoneConfig {
	return ZoneConfig{
		Workers:      1,
		TickInterval: 100 * time.Millisecond,
		RNGSeed:      0x5eed,
	}
}

// Valid returns an error if the configuration cannot be used to construct a
// zone.
func (c ZoneConfig) Valid() error {
	switch {
	case c.Workers <= 0:
		return fmt.Errorf("workers = %d: fails the condition that: 0 < workers", c.Workers)
	case c.TickInterval <= 0:
		return fmt.Errorf("tickInterval = %s: fails the condition that: 0 < tickInterval", c.TickInterval)
	case c.DefaultAggroMode < aggro.Disabled || c.DefaultAggroMode > aggro.Value:
		return fmt.Errorf("defaultAggroMode = %d: not a known aggro mode", c.DefaultAggroMode)
	case c.DefaultAggroReducePerSec < 0:
		return errors.New("defaultAggroReducePerSec must be >= 0")
	case c.DefaultAggroMinAggro < 0:
		return errors.New("defaultAggroMinAggro must be >= 0")
	}
	return nil
}

// Load reads a ZoneConfig from a YAML file at path and validates it.
func Load(path string) (ZoneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ZoneConfig{}, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ZoneConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Valid(); err != nil {
		return ZoneConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg ZoneConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// runtimeMu and runtimeCfg hold the process-wide default configuration a
// host can set once at startup (e.g. from a flag) and have every later
// zone construction pick up, mirroring the teacher's runtime-parameters
// singleton.
var (
	runtimeMu  sync.RWMutex
	runtimeCfg ZoneConfig
	runtimeSet bool
)

// InitializeRuntime sets the process-wide default configuration, validating
// it first.
func InitializeRuntime(cfg ZoneConfig) error {
	if err := cfg.Valid(); err != nil {
		return err
	}
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	runtimeCfg = cfg
	runtimeSet = true
	return nil
}

// Runtime returns the process-wide default configuration, or Default() if
// InitializeRuntime has never been called.
func Runtime() ZoneConfig {
	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	if !runtimeSet {
		return Default()
	}
	return runtimeCfg
}

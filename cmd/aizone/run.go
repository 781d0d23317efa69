// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aizone/behaviortree/builtin"
	"github.com/aizone/behaviortree/config"
	"github.com/aizone/behaviortree/core"
	"github.com/aizone/behaviortree/internal/xlog"
	"github.com/aizone/behaviortree/metrics"
	"github.com/aizone/behaviortree/parser"
	"github.com/aizone/behaviortree/zone"
)

func runCmd() *cobra.Command {
	var (
		treePath     string
		configPath   string
		entitiesPath string
		metricsAddr  string
		duration     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a zone against a tree definition and an entities file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), treePath, configPath, entitiesPath, metricsAddr, duration)
		},
	}

	cmd.Flags().StringVar(&treePath, "tree", "", "path to a tree-definition file (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a zone YAML config file (defaults to config.Default())")
	cmd.Flags().StringVar(&entitiesPath, "entities", "", "path to a YAML list of starting entities (required)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	cmd.MarkFlagRequired("tree")
	cmd.MarkFlagRequired("entities")
	return cmd
}

func loadEntities(path string) ([]entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entities []entity
	if err := yaml.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("parse entities file: %w", err)
	}
	return entities, nil
}

func run(ctx context.Context, treePath, configPath, entitiesPath, metricsAddr string, duration time.Duration) error {
	log, err := xlog.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	log.Info("loaded config", "workers", cfg.Workers, "tickInterval", cfg.TickInterval)

	treeData, err := os.ReadFile(treePath)
	if err != nil {
		return fmt.Errorf("read tree file: %w", err)
	}

	entities, err := loadEntities(entitiesPath)
	if err != nil {
		return fmt.Errorf("load entities: %w", err)
	}
	if len(entities) == 0 {
		return fmt.Errorf("entities file %q defines no entities", entitiesPath)
	}

	reg := builtin.NewRegistry(func(ai core.AI, text string) {
		log.Info("print", "ai", ai.CharacterID(), "text", text)
	})

	root, err := parser.TreeNodeParser(string(treeData), reg)
	if err != nil {
		return fmt.Errorf("parse tree: %w", err)
	}

	var zoneMetrics *metrics.ZoneMetrics
	if metricsAddr != "" {
		zoneMetrics, err = metrics.NewZoneMetrics("aizone", prometheus.DefaultRegisterer)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server stopped", "err", err)
			}
		}()
		defer srv.Close()
		log.Info("serving metrics", "addr", metricsAddr)
	}

	z := zone.New(cfg.Workers)
	z.SetMetrics(zoneMetrics)
	z.SetAggroDefaults(cfg.DefaultAggroMode, cfg.DefaultAggroReducePerSec, cfg.DefaultAggroMinAggro)

	rng := rand.New(rand.NewPCG(cfg.RNGSeed, cfg.RNGSeed^0x9e3779b97f4a7c15))
	for _, e := range entities {
		ai := zone.NewAI(newCharacter(e), root, rng)
		z.Add(ai)
	}
	log.Info("zone started", "entities", len(entities))

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		sigCtx, cancel = context.WithTimeout(sigCtx, duration)
		defer cancel()
	}

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCtx.Done():
			log.Info("shutting down")
			z.Shutdown()
			return nil
		case <-ticker.C:
			if err := z.Update(sigCtx, cfg.TickInterval.Milliseconds()); err != nil {
				log.Error("tick failed", "err", err)
			}
		}
	}
}

// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package xlog

import "testing"

func TestNopLoggerNeverPanics(t *testing.T) {
	l := NewNop()
	l.Debug("msg", "k", "v")
	l.Info("msg", "k", 1)
	l.Warn("msg")
	l.Error("msg", "err", "boom")
	_ = l.With("component", "test")
	if err := l.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
}

func TestNewDevelopmentProducesUsableLogger(t *testing.T) {
	l, err := NewDevelopment()
	if err != nil {
		t.Fatalf("NewDevelopment: %v", err)
	}
	l.Info("hello", "n", 1)
	_ = l.Sync()
}

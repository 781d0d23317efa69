// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package xlog is the runtime's structured logging surface, wrapping
// go.uber.org/zap the way the teacher's log package wraps its logger: a
// small interface with leveled, key-value methods, plus a no-op
// implementation for tests and embedders that don't want log output.
package xlog

import "go.uber.org/zap"

// Logger is the structured logger every subsystem that needs to report
// diagnostics (the zone scheduler, the parser's host wrapper, the CLI)
// depends on, rather than on *zap.Logger directly.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)

	// With returns a Logger that prepends kv to every subsequent call.
	With(kv ...any) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

type zapLogger struct {
	l *zap.SugaredLogger
}

// New wraps z as a Logger.
func New(z *zap.Logger) Logger {
	return &zapLogger{l: z.Sugar()}
}

// NewProduction returns a Logger backed by zap's production configuration
// (JSON, info level and above).
func NewProduction() (Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(z), nil
}

// NewDevelopment returns a Logger backed by zap's development
// configuration (console-friendly, debug level and above).
func NewDevelopment() (Logger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return New(z), nil
}

func (z *zapLogger) Debug(msg string, kv ...any) { z.l.Debugw(msg, kv...) }
func (z *zapLogger) Info(msg string, kv ...any)  { z.l.Infow(msg, kv...) }
func (z *zapLogger) Warn(msg string, kv ...any)  { z.l.Warnw(msg, kv...) }
func (z *zapLogger) Error(msg string, kv ...any) { z.l.Errorw(msg, kv...) }

func (z *zapLogger) With(kv ...any) Logger {
	return &zapLogger{l: z.l.With(kv...)}
}

func (z *zapLogger) Sync() error { return z.l.Sync() }

// nopLogger discards everything. Used by default wherever a Logger is
// required but the host hasn't configured one (e.g. library entry points
// called from tests).
type nopLogger struct{}

// NewNop returns a Logger that discards every call.
func NewNop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) With(...any) Logger   { return nopLogger{} }
func (nopLogger) Sync() error          { return nil }

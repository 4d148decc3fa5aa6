// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package log is a structured logger for the faddlmatch services, built on
// top of zap. It keeps a package-level logger so that any component can log
// without carrying a logger instance around, and supports request-scoped
// fields through L(ctx).
package log

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"k8s.io/klog"
)

// Field is an alias for the zap field type, so callers only import this
// package.
type Field = zap.Field

// Commonly used field constructors re-exported from zap.
var (
	Any      = zap.Any
	Bool     = zap.Bool
	Duration = zap.Duration
	Err      = zap.Error
	Int      = zap.Int
	Int64    = zap.Int64
	String   = zap.String
	Uint64   = zap.Uint64
)

type zapLogger struct {
	zapLogger *zap.Logger
}

var (
	std = newLogger(NewOptions())
	mu  sync.Mutex
)

// Init initializes the package-level logger with the given options.
func Init(opts *Options) {
	mu.Lock()
	defer mu.Unlock()
	std = newLogger(opts)

	// route klog output (used by some dependencies) into zap
	klog.SetOutputBySeverity("INFO", &klogWriter{})
}

func newLogger(opts *Options) *zapLogger {
	if opts == nil {
		opts = NewOptions()
	}

	if err := opts.Build(); err != nil {
		log.Printf("build logger failed: %v", err)
	}

	return &zapLogger{zapLogger: zap.L().Named(opts.Name)}
}

type klogWriter struct{}

func (w *klogWriter) Write(p []byte) (n int, err error) {
	zap.S().Info(string(p))

	return len(p), nil
}

// SugaredLogger returns the global sugared logger.
func SugaredLogger() *zap.SugaredLogger {
	return std.zapLogger.Sugar()
}

// ZapLogger returns the underlying zap logger.
func ZapLogger() *zap.Logger {
	return std.zapLogger
}

// Flush calls the underlying Core's Sync method, flushing any buffered log
// entries. Applications should take care to call Flush before exiting.
func Flush() { _ = std.zapLogger.Sync() }

// Debug logs a message at debug level with structured fields.
func Debug(msg string, fields ...Field) { std.zapLogger.Debug(msg, fields...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, v ...interface{}) { std.zapLogger.Sugar().Debugf(format, v...) }

// Debugw logs a message with key-value pairs at debug level.
func Debugw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Debugw(msg, keysAndValues...)
}

// Info logs a message at info level with structured fields.
func Info(msg string, fields ...Field) { std.zapLogger.Info(msg, fields...) }

// Infof logs a formatted message at info level.
func Infof(format string, v ...interface{}) { std.zapLogger.Sugar().Infof(format, v...) }

// Infow logs a message with key-value pairs at info level.
func Infow(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Infow(msg, keysAndValues...)
}

// Warn logs a message at warn level with structured fields.
func Warn(msg string, fields ...Field) { std.zapLogger.Warn(msg, fields...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, v ...interface{}) { std.zapLogger.Sugar().Warnf(format, v...) }

// Warnw logs a message with key-value pairs at warn level.
func Warnw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Warnw(msg, keysAndValues...)
}

// Error logs a message at error level with structured fields.
func Error(msg string, fields ...Field) { std.zapLogger.Error(msg, fields...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, v ...interface{}) { std.zapLogger.Sugar().Errorf(format, v...) }

// Errorw logs a message with key-value pairs at error level.
func Errorw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Errorw(msg, keysAndValues...)
}

// Panic logs a message at panic level, then panics.
func Panic(msg string, fields ...Field) { std.zapLogger.Panic(msg, fields...) }

// Panicf logs a formatted message at panic level, then panics.
func Panicf(format string, v ...interface{}) { std.zapLogger.Sugar().Panicf(format, v...) }

// Fatal logs a message at fatal level, then calls os.Exit(1).
func Fatal(msg string, fields ...Field) { std.zapLogger.Fatal(msg, fields...) }

// Fatalf logs a formatted message at fatal level, then calls os.Exit(1).
func Fatalf(format string, v ...interface{}) { std.zapLogger.Sugar().Fatalf(format, v...) }

// WithName adds a new path segment to the logger's name.
func WithName(name string) *zapLogger {
	return &zapLogger{zapLogger: std.zapLogger.Named(name)}
}

// WithValues creates a child logger and adds fields to it.
func WithValues(fields ...Field) *zapLogger {
	return &zapLogger{zapLogger: std.zapLogger.With(fields...)}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.zapLogger.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.zapLogger.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.zapLogger.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.zapLogger.Error(msg, fields...) }

func (l *zapLogger) Debugf(format string, v ...interface{}) {
	l.zapLogger.Sugar().Debugf(format, v...)
}

func (l *zapLogger) Infof(format string, v ...interface{}) { l.zapLogger.Sugar().Infof(format, v...) }
func (l *zapLogger) Warnf(format string, v ...interface{}) { l.zapLogger.Sugar().Warnf(format, v...) }

func (l *zapLogger) Errorf(format string, v ...interface{}) {
	l.zapLogger.Sugar().Errorf(format, v...)
}

func (l *zapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Errorw(msg, keysAndValues...)
}

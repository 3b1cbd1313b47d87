// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating Foundation loggers
// Author:      Mike Stoffels
// Created:     2026-09-27
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"

	mzwlog "github.com/msto63/mZW/foundation/core/log"
	"github.com/msto63/mZW/pkg/core/config"
)

var (
	defaultOutput   io.Writer = os.Stderr
	defaultOutputMu sync.RWMutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text, console or logfmt (default: json)
	Format string

	// Output writer (default: stderr)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// FromConfig derives a logger configuration from the general section
func FromConfig(serviceName string, cfg *config.Config) LoggerConfig {
	lc := DefaultLoggerConfig(serviceName)
	if cfg != nil {
		lc.Level = cfg.General.LogLevel
		lc.Format = cfg.General.LogFormat
	}
	return lc
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *mzwlog.Logger {
	level, err := mzwlog.ParseLevel(cfg.Level)
	if err != nil {
		level = mzwlog.LevelInfo
	}
	format, err := mzwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mzwlog.FormatJSON
	}

	output := cfg.Output
	if output == nil {
		output = DefaultOutput()
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mzwlog.NewWithConfig(mzwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *mzwlog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// SetDefaultOutput changes the writer used by loggers created without an
// explicit output
func SetDefaultOutput(w io.Writer) {
	defaultOutputMu.Lock()
	defer defaultOutputMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	defaultOutput = w
}

// DefaultOutput returns the writer used by loggers without explicit output
func DefaultOutput() io.Writer {
	defaultOutputMu.RLock()
	defer defaultOutputMu.RUnlock()
	return defaultOutput
}

// Compatibility layer for key/value call sites

// Logger wraps the Foundation logger with key/value methods
type Logger struct {
	*mzwlog.Logger
	name string
}

// New creates a key/value logger with the default configuration
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap adapts an existing Foundation logger
func Wrap(l *mzwlog.Logger) *Logger {
	return &Logger{Logger: l, name: l.Name()}
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	mzwLevel := mzwlog.LevelInfo
	switch level {
	case LevelDebug:
		mzwLevel = mzwlog.LevelDebug
	case LevelInfo:
		mzwLevel = mzwlog.LevelInfo
	case LevelWarn:
		mzwLevel = mzwlog.LevelWarn
	case LevelError:
		mzwLevel = mzwlog.LevelError
	}

	return &Logger{
		Logger: l.Logger.WithLevel(mzwLevel),
		name:   l.name,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to mzwlog.Fields
func toFields(keysAndValues ...interface{}) mzwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mzwlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

// File: timer.go
// Title: Operation Timer
// Description: Measures and logs the duration of long-running computations
//              such as grid range builds and tower evaluation.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-02
// Modified: 2026-09-15
//
// Change History:
// - 2026-09-02 v0.1.0: Initial implementation
// - 2026-09-15 v0.2.0: Removed StopWithResult

package log

import (
	"time"
)

// Timer measures one operation and logs its duration once
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the level of the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to the completion message
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop logs "<operation> completed" with the elapsed time. Later calls
// return 0 and log nothing.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()
	if t.logger != nil {
		t.logger.log(t.level, t.operation+" completed", nil, t.timing(elapsed))
	}
	return elapsed
}

// StopWithError logs "<operation> failed" with err and the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()
	if t.logger != nil {
		f := t.timing(elapsed)
		f["success"] = false
		t.logger.log(LevelWarn, t.operation+" failed", err, f)
	}
	return elapsed
}

// Checkpoint logs an intermediate timing at debug level
func (t *Timer) Checkpoint(name string, fields ...Fields) {
	if t.stopped || t.logger == nil {
		return
	}
	f := t.timing(t.Elapsed())
	f["checkpoint"] = name
	for _, set := range fields {
		for k, v := range set {
			f[k] = v
		}
	}
	t.logger.log(LevelDebug, t.operation+" checkpoint: "+name, nil, f)
}

// IsRunning returns true until the timer is stopped
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (t *Timer) timing(elapsed time.Duration) Fields {
	f := make(Fields, len(t.fields)+3)
	for k, v := range t.fields {
		f[k] = v
	}
	f["operation"] = t.operation
	f["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6
	f["duration"] = elapsed.String()
	return f
}

// File: entry.go
// Title: Log Entry and Fields
// Description: The Entry record passed to formatters and the Fields helpers
//              used at call sites.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-02
// Modified: 2026-09-15
//
// Change History:
// - 2026-09-02 v0.1.0: Initial implementation
// - 2026-09-15 v0.2.0: SessionID and BigInt helper

package log

import (
	"math/big"
	"time"
)

// Entry represents a single log record
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string

	RequestID string
	SessionID string

	Fields   Fields
	Error    error
	Duration time.Duration
	Caller   *CallerInfo
}

// CallerInfo holds the source location of a log call
type CallerInfo struct {
	Function string
	File     string
	Line     int
}

// Fields holds structured key/value data for an entry
type Fields map[string]interface{}

// Field creates a single-field set
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an "error" field
func Err(err error) Fields {
	return Fields{"error": err}
}

// Int creates an integer field
func Int(key string, value int) Fields {
	return Fields{key: value}
}

// String creates a string field
func String(key string, value string) Fields {
	return Fields{key: value}
}

// BigInt creates a field holding the decimal form of v; nil logs as "nil"
func BigInt(key string, v *big.Int) Fields {
	if v == nil {
		return Fields{key: "nil"}
	}
	return Fields{key: v.String()}
}

// Merge combines two Fields into a new set; other wins on conflicts
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for k, v := range f {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// NewEntry creates a new log entry with the given level and message
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// WithCaller adds caller information to the entry
func (e *Entry) WithCaller(function, file string, line int) *Entry {
	e.Caller = &CallerInfo{Function: function, File: file, Line: line}
	return e
}

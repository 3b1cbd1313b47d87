// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, formatting, derived loggers,
//              error logging and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-02
// Modified: 2026-09-15

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf, Name: "test"}), buf
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages were written:\n%s", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" warning ", LevelWarn, false},
		{"", LevelInfo, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("logfmt"); err != nil || f != FormatLogfmt {
		t.Errorf("ParseFormat(logfmt) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestJSONOutput(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	logger.WithRequestID("req-1").WithSessionID("sess-1").
		Info("node added", Int("m", 2), BigInt("value", big.NewInt(7)))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	want := map[string]interface{}{
		"level":      "info",
		"message":    "node added",
		"logger":     "test",
		"request_id": "req-1",
		"session_id": "sess-1",
		"m":          float64(2),
		"value":      "7",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestTextOutputSortedFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)
	logger.Info("sorted", Fields{"b": 2, "a": 1, "c": 3})

	if !strings.Contains(buf.String(), "[a=1 b=2 c=3]") {
		t.Errorf("fields not sorted: %s", buf.String())
	}
}

func TestLogfmtOutput(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatLogfmt)
	logger.Warn("clamped", String("reason", "ceiling"))

	out := buf.String()
	for _, want := range []string{"level=warn", `message="clamped"`, `reason="ceiling"`, "logger=test"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestDerivedLoggersAreIndependent(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatText)
	child := base.WithField("module", "grid")

	base.Info("base")
	if strings.Contains(buf.String(), "module=grid") {
		t.Error("WithField leaked into the parent logger")
	}
	buf.Reset()
	child.Info("child")
	if !strings.Contains(buf.String(), "module=grid") {
		t.Error("child logger lost its field")
	}
}

func TestLogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"validation", mzwerror.New("bad").WithCode(mzwerror.CodeInvalidInput), "debug"},
		{"overflow", mzwerror.New("big").WithCode(mzwerror.CodeOverflow), "warn"},
		{"config", mzwerror.New("cfg").WithCode(mzwerror.CodeInvalidConfig), "error"},
		{"plain", errors.New("plain"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatJSON)
			logger.LogError(tt.err)

			var got map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if got["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", got["level"], tt.wantLevel)
			}
		})
	}

	logger, buf := newBufferLogger(LevelTrace, FormatJSON)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) wrote output")
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)
	timer := logger.StartTimer("grid.BuildRange").WithField("m", 3)
	timer.Checkpoint("half")
	if !timer.IsRunning() {
		t.Fatal("timer stopped early")
	}
	timer.Stop()
	if timer.Stop() != 0 {
		t.Error("second Stop() should return 0")
	}

	out := buf.String()
	if !strings.Contains(out, "grid.BuildRange checkpoint: half") {
		t.Errorf("missing checkpoint: %s", out)
	}
	if strings.Count(out, "grid.BuildRange completed") != 1 {
		t.Errorf("completion logged %d times", strings.Count(out, "grid.BuildRange completed"))
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.IsLevelEnabled(LevelFatal) {
		t.Error("Discard() logger should have every level disabled")
	}
}

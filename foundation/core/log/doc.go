// Package log provides structured logging for the mZW library and its tools.
//
// Package: log
// Title: mZW Structured Logging
// Description: Leveled, structured logging with JSON, text, console and logfmt
//              output. Entries carry a logger name, request and session IDs,
//              custom fields and optional timing. Errors from core/error are
//              logged with their code and severity.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-02
// Modified: 2026-09-15
//
// Change History:
// - 2026-09-02 v0.1.0: Initial implementation
// - 2026-09-15 v0.2.0: Session IDs, sorted field output, BigInt field helper
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelDebug,
//		Format: log.FormatConsole,
//		Name:   "grid",
//	})
//
//	logger.Debug("node memoized", log.Fields{"m": 2, "n": 3})
//
//	timer := logger.StartTimer("tower.Evaluate")
//	defer timer.Stop()
package log

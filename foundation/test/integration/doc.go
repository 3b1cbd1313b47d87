// Package integration holds cross-module tests for the mZW foundation.
//
// Package: integration
// Title: mZW Foundation Integration Tests
// Description: Tests that check how the foundation modules behave together:
//              numfmt parsing feeding mathx arithmetic, error codes and
//              severities surviving module boundaries, and the logger
//              rendering coded errors.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-04
// Modified: 2026-09-20
//
// Change History:
// - 2026-09-04 v0.1.0: Error integration tests
// - 2026-09-20 v0.2.0: Parse/compute/format pipeline benchmarks
//
// Test Categories:
//
// Error Integration Tests (error_integration_test.go):
// - Every module reports *mzwerror.Error with a module detail
// - Severity follows the error code
// - Codes survive wrapping with fmt.Errorf and mzwerror.Wrap
// - The logger maps severities to levels
//
// Performance Tests (performance_test.go):
// - Parse, Pow and Format on growing operands
//
// Run with:
//
//	go test ./test/integration/...
//	go test -bench=. ./test/integration/...
package integration

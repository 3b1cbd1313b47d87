// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the mZW big-integer library. Codes
//              classify failures into validation, arithmetic, data-structure and
//              configuration categories so callers can branch without string
//              matching.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-02
// Modified: 2026-09-14
//
// Change History:
// - 2026-09-02 v0.1.0: Initial code set for the mZW library
// - 2026-09-14 v0.2.0: Added data-structure codes and DIVISION_BY_ZERO

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"
	CodeNotFound Code = "NOT_FOUND"

	// Validation: the caller passed something outside the operation's domain
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
	CodeDivisionByZero   Code = "DIVISION_BY_ZERO"

	// Arithmetic: a result would leave the configured ceiling
	CodeOverflow  Code = "OVERFLOW"
	CodeUnderflow Code = "UNDERFLOW"

	// Data structures
	CodeHeapProperty      Code = "HEAP_PROPERTY"
	CodeTreeDepthExceeded Code = "TREE_DEPTH_EXCEEDED"
	CodeEmptyStructure    Code = "EMPTY_STRUCTURE"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	if c.Category() != "generic" {
		return true
	}
	return c == CodeUnknown || c == CodeInternal || c == CodeNotFound
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeValidationFailed, CodeInvalidInput, CodeInvalidFormat, CodeValueOutOfRange, CodeDivisionByZero:
		return "validation"
	case CodeOverflow, CodeUnderflow:
		return "arithmetic"
	case CodeHeapProperty, CodeTreeDepthExceeded, CodeEmptyStructure:
		return "datastructure"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

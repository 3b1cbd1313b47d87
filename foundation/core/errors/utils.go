// File: utils.go
// Title: Shared Error Handling Utilities
// Description: Module identifiers, the fluent ErrorBuilder and the standard
//              constructors used across the mZW library.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-03
// Modified: 2026-09-14
//
// Change History:
// - 2026-09-03 v0.1.0: Initial implementation of shared error utilities
// - 2026-09-14 v0.2.0: Overflow, DivisionByZero and EmptyStructure

package errors

import (
	"errors"
	"fmt"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
)

// Module identifiers attached as the "module" detail
const (
	ModuleMathx        = "mathx"
	ModuleNumfmt       = "numfmt"
	ModuleHeap         = "heap"
	ModuleAVLTree      = "avltree"
	ModuleIndexedArray = "indexedarray"
	ModuleGrid         = "grid"
	ModuleTower        = "tower"
	ModuleConfig       = "config"
	ModuleService      = "service"
)

// ErrorBuilder provides a fluent interface for building standardized errors
type ErrorBuilder struct {
	module    string
	operation string
	message   string
	cause     error
	details   map[string]interface{}
	severity  *mzwerror.Severity
	code      mzwerror.Code
}

// NewErrorBuilder creates a new error builder for the specified module
func NewErrorBuilder(module string) *ErrorBuilder {
	return &ErrorBuilder{
		module:  module,
		details: make(map[string]interface{}),
		code:    mzwerror.CodeInternal,
	}
}

// Operation sets the operation name for the error
func (eb *ErrorBuilder) Operation(operation string) *ErrorBuilder {
	eb.operation = operation
	return eb
}

// Message sets the error message
func (eb *ErrorBuilder) Message(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// Messagef sets the error message with formatting
func (eb *ErrorBuilder) Messagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// Cause sets the underlying cause
func (eb *ErrorBuilder) Cause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Detail adds a single detail
func (eb *ErrorBuilder) Detail(key string, value interface{}) *ErrorBuilder {
	eb.details[key] = value
	return eb
}

// Details adds multiple details
func (eb *ErrorBuilder) Details(details map[string]interface{}) *ErrorBuilder {
	for k, v := range details {
		eb.details[k] = v
	}
	return eb
}

// Severity overrides the severity derived from the code
func (eb *ErrorBuilder) Severity(severity mzwerror.Severity) *ErrorBuilder {
	eb.severity = &severity
	return eb
}

// Code sets the error code
func (eb *ErrorBuilder) Code(code mzwerror.Code) *ErrorBuilder {
	eb.code = code
	return eb
}

// Build creates the error
func (eb *ErrorBuilder) Build() *mzwerror.Error {
	message := eb.message
	if message == "" {
		message = fmt.Sprintf("%s.%s failed", eb.module, eb.operation)
	}

	var err *mzwerror.Error
	if eb.cause != nil {
		err = mzwerror.Wrap(eb.cause, message)
	} else {
		err = mzwerror.New(message)
	}

	err = err.WithCode(eb.code).
		WithOperation(eb.module + "." + eb.operation).
		WithDetails(eb.details).
		WithDetail("module", eb.module).
		WithDetail("operation", eb.operation)
	if eb.severity != nil {
		err = err.WithSeverity(*eb.severity)
	} else {
		err = err.WithSeverity(mzwerror.GetSeverityFromCode(eb.code))
	}
	return err
}

// InvalidInput reports an argument the operation cannot accept
func InvalidInput(module, operation string, input interface{}, expected string) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mzwerror.CodeInvalidInput).
		Messagef("validation failed: invalid input for %s.%s: expected %s", module, operation, expected).
		Detail("input", fmt.Sprint(input)).
		Detail("expected", expected).
		Build()
}

// InvalidFormat reports a string that does not match the expected format
func InvalidFormat(module string, input interface{}, expectedFormat string) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation("parse").
		Code(mzwerror.CodeInvalidFormat).
		Messagef("validation failed: invalid format %q, expected %s", fmt.Sprint(input), expectedFormat).
		Detail("input", fmt.Sprint(input)).
		Detail("expected_format", expectedFormat).
		Build()
}

// OutOfRange reports a value outside [min, max]
func OutOfRange(module, operation string, value, min, max interface{}) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mzwerror.CodeValueOutOfRange).
		Messagef("validation failed: %v out of range [%v, %v]", value, min, max).
		Detail("value", fmt.Sprint(value)).
		Detail("min", fmt.Sprint(min)).
		Detail("max", fmt.Sprint(max)).
		Build()
}

// ValidationFailed reports a field that violates a rule
func ValidationFailed(module, field string, value interface{}, reason string) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation("validate").
		Code(mzwerror.CodeValidationFailed).
		Messagef("validation failed: %s: %s", field, reason).
		Detail("field", field).
		Detail("value", fmt.Sprint(value)).
		Build()
}

// DivisionByZero reports a zero divisor
func DivisionByZero(module, operation string) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mzwerror.CodeDivisionByZero).
		Message("validation failed: division by zero").
		Build()
}

// Overflow reports a result that would exceed the ceiling
func Overflow(module, operation string, ceiling interface{}) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mzwerror.CodeOverflow).
		Messagef("overflow: result of %s.%s exceeds %v", module, operation, ceiling).
		Detail("ceiling", fmt.Sprint(ceiling)).
		Build()
}

// Underflow reports a result below the lower bound
func Underflow(module, operation string, floor interface{}) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mzwerror.CodeUnderflow).
		Messagef("underflow: result of %s.%s is below %v", module, operation, floor).
		Detail("floor", fmt.Sprint(floor)).
		Build()
}

// EmptyStructure reports an operation that needs at least one element
func EmptyStructure(module, operation string) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mzwerror.CodeEmptyStructure).
		Messagef("%s is empty", module).
		Build()
}

// NotFound reports a missing element
func NotFound(module, operation string, identifier interface{}) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mzwerror.CodeNotFound).
		Messagef("%v not found", identifier).
		Detail("identifier", fmt.Sprint(identifier)).
		Build()
}

// OperationFailed wraps an unexpected failure
func OperationFailed(module, operation string, cause error) *mzwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Cause(cause).
		Build()
}

// ExtractDetails returns the details of err, or nil for foreign errors
func ExtractDetails(err error) map[string]interface{} {
	var e *mzwerror.Error
	if errors.As(err, &e) {
		return e.Details()
	}
	return nil
}

// ExtractModule returns the module detail of err
func ExtractModule(err error) string {
	s, _ := ExtractDetails(err)["module"].(string)
	return s
}

// ExtractOperation returns the operation detail of err
func ExtractOperation(err error) string {
	s, _ := ExtractDetails(err)["operation"].(string)
	return s
}

// IsModuleOperation reports whether err was raised by module.operation
func IsModuleOperation(err error, module, operation string) bool {
	return ExtractModule(err) == module && ExtractOperation(err) == operation
}

// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     result
// Description: Tagged success/failure values returned by heap and array mutators
// Author:      Mike Stoffels
// Created:     2026-09-18
// License:     MIT
// ============================================================================

package result

import "fmt"

// Result carries either a value (Ok) or an error message.
// Callers branch on Ok instead of handling an error value.
type Result[T any] struct {
	Ok    bool
	Value T
	Err   string

	cause error
}

// Success wraps v as a successful result
func Success[T any](v T) Result[T] {
	return Result[T]{Ok: true, Value: v}
}

// Failure builds a failed result with a formatted message
func Failure[T any](format string, args ...any) Result[T] {
	return Result[T]{Err: fmt.Sprintf(format, args...)}
}

// FromError converts err into a failed result; a nil error yields a
// successful result holding the zero value.
func FromError[T any](err error) Result[T] {
	if err == nil {
		var zero T
		return Success(zero)
	}
	return Result[T]{Err: err.Error(), cause: err}
}

// Get returns the value and the success flag
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.Ok
}

// OrElse returns the value, or fallback on failure
func (r Result[T]) OrElse(fallback T) T {
	if r.Ok {
		return r.Value
	}
	return fallback
}

// Error returns the failure as an error, nil on success. Results built by
// FromError return the original error so its code survives.
func (r Result[T]) Error() error {
	if r.Ok {
		return nil
	}
	if r.cause != nil {
		return r.cause
	}
	return fmt.Errorf("%s", r.Err)
}

// String renders the result for logs and the explorer
func (r Result[T]) String() string {
	if r.Ok {
		return fmt.Sprintf("ok(%v)", r.Value)
	}
	return "failed: " + r.Err
}

// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

import (
	"errors"
	"fmt"
)

// Standard errors.
var (
	// ErrInvalidArgCount is returned by [Engine.Dispatch] when called with
	// anything other than 0, 1 or 2 arguments.
	ErrInvalidArgCount error = &UsageError{Message: `Invalid number of arguments for callback processing; must be 0, 1 or 2`}

	// ErrInvalidArgument is wrapped by usage errors caused by an argument of
	// the wrong type.
	ErrInvalidArgument = errors.New("auxcallback: invalid argument")

	// ErrNilCallback is returned when attempting to send a nil callback.
	ErrNilCallback = errors.New("auxcallback: nil callback")

	// ErrZeroHandle is returned when using a zero value Sender or Receiver.
	ErrZeroHandle = errors.New("auxcallback: zero value channel handle")

	// ErrInvalidCapacity is returned by [WithCapacity] for a capacity < 1.
	ErrInvalidCapacity = errors.New("auxcallback: channel capacity must be positive")

	// ErrNilRegistry is returned by [NewEngine] when given a nil registry.
	ErrNilRegistry = errors.New("auxcallback: nil registry")
)

// UsageError indicates that the host invoked the engine incorrectly, e.g.
// with the wrong number of arguments. It is fatal to that invocation only,
// and is returned before any channel is touched.
type UsageError struct {
	Cause   error
	Message string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *UsageError) Unwrap() error {
	return e.Cause
}

func newArgumentError(format string, args ...any) *UsageError {
	return &UsageError{
		Message: fmt.Sprintf(format, args...),
		Cause:   ErrInvalidArgument,
	}
}

// PanicError wraps a value recovered from a panicking [Callback]. It is
// handled like any other callback failure.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("auxcallback: callback panicked: %v", e.Value)
}

// Unwrap returns the panic value, if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

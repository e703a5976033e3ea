// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

// ErrorSink receives the messages of failed callbacks, e.g. a host provided
// stack trace procedure. It is called on the draining goroutine, at arbitrary
// points during a drain. Errors returned by ReportError are discarded.
type ErrorSink interface {
	ReportError(message string) error
}

// ErrorSinkFunc implements [ErrorSink].
type ErrorSinkFunc func(message string) error

// DiscardSink is an [ErrorSink] that ignores all messages.
type DiscardSink struct{}

var (
	_ ErrorSink = ErrorSinkFunc(nil)
	_ ErrorSink = DiscardSink{}
)

// ReportError implements [ErrorSink].
func (f ErrorSinkFunc) ReportError(message string) error { return f(message) }

// ReportError implements [ErrorSink].
func (DiscardSink) ReportError(string) error { return nil }

// reportError calls sink, converting any panic into a *PanicError.
func reportError(sink ErrorSink, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return sink.ReportError(message)
}

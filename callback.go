// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

// Callback is a deferred function, enqueued on a channel by a producer, and
// invoked later by the [Engine], on the host goroutine.
//
// Call returns either a value (discarded by the engine) or an error, the
// message of which is reported to the [ErrorSink]. Implementations must be
// safe to hand off between goroutines.
type Callback interface {
	Call() (any, error)
}

// Func implements [Callback].
type Func func() (any, error)

// VoidFunc implements [Callback], for callbacks without a meaningful value.
type VoidFunc func() error

var (
	_ Callback = Func(nil)
	_ Callback = VoidFunc(nil)
)

// Call implements [Callback].
func (f Func) Call() (any, error) { return f() }

// Call implements [Callback].
func (f VoidFunc) Call() (any, error) { return nil, f() }

// invoke calls cb, converting any panic into a *PanicError.
func invoke(cb Callback) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	_, err = cb.Call()
	return
}

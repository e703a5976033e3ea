// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package auxcallback implements deferred callbacks: code running on any
// goroutine enqueues work on a named channel, and a single designated host
// goroutine later drains that work, invoking each callback synchronously.
//
// It exists for hosts that are single-threaded and only safe to re-enter from
// one goroutine, e.g. a [goja] runtime driven by an event loop. Background
// work (async I/O completions, etc.) hands results back to the host by
// deferring a callback, instead of touching the host directly.
//
// # Architecture
//
// A [Registry] maps channel identifiers to bounded FIFO channels
// ([DefaultCapacity] entries each, unless configured via [WithCapacity]).
// Channels are created lazily, on first use of an identifier, and are never
// removed. Each channel exposes a [Sender] and a [Receiver] handle, both
// plain values that may be copied and shared freely.
//
// An [Engine] drains channels, on the host goroutine:
//   - [Engine.ProcessAll]: every channel, blocking (see [BlockingMode])
//   - [Engine.ProcessAllFor]: every channel, non-blocking, time bounded
//   - [Engine.ProcessFor]: one channel, non-blocking, time bounded
//   - [Engine.Process]: one channel, non-blocking, unbounded
//
// [Engine.Dispatch] maps a variable number of host arguments onto the four
// operations above, see the gojahost package for a goja binding.
//
// # Failures
//
// A [Callback] fails by returning a non-nil error, or by panicking (reported
// as a [*PanicError]). The error message is passed to the configured
// [ErrorSink], on a best-effort basis: failures of the sink itself are
// discarded. A failed callback never stops the drain.
//
// # Ordering
//
// Callbacks sent on the same channel are invoked in the order they were
// sent. There is no ordering across channels, and the order in which
// channels are visited is unspecified.
//
// # Usage
//
//	registry, _ := auxcallback.NewRegistry()
//	engine, _ := auxcallback.NewEngine(registry,
//	    auxcallback.WithErrorSink(auxcallback.ErrorSinkFunc(func(msg string) error {
//	        fmt.Println("callback failed:", msg)
//	        return nil
//	    })),
//	)
//
//	// any goroutine
//	_ = registry.SenderByIDInsert("io").Send(auxcallback.VoidFunc(func() error {
//	    return nil
//	}))
//
//	// host goroutine, once per tick
//	exceeded := engine.ProcessAllFor(5 * time.Millisecond)
//
// [goja]: github.com/dop251/goja
package auxcallback

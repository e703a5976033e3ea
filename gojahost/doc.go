// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package gojahost exposes an [auxcallback.Engine] to a Goja JavaScript
// runtime, driven by a [github.com/joeycumines/go-eventloop] loop.
//
// The loop goroutine is the host goroutine: every drain, and therefore every
// deferred callback and every error report, runs there.
//
//	loop, _ := eventloop.New()
//	runtime := goja.New()
//	registry, _ := auxcallback.NewRegistry()
//	host, err := gojahost.New(loop, runtime, registry)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := host.Bind(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// from any goroutine
//	_ = host.Defer("io", auxcallback.VoidFunc(func() error { ... }))
//
// Scripts then drain with the same calling convention as
// [auxcallback.Engine.Dispatch]:
//
//	process_callbacks()            // every channel, may block
//	process_callbacks("io")        // one channel, what is queued now
//	process_callbacks(null, 5)     // every channel, up to 5ms
//	process_callbacks("io", 5)     // one channel, up to 5ms
//
// The bounded forms return true if the budget was exceeded. Failures are
// passed to the global stack_trace function, if the script defines one.
package gojahost

// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gojahost

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-auxcallback"
	eventloop "github.com/joeycumines/go-eventloop"
)

// ErrErrorSinkNotFound is returned by [Host.ReportError] when the runtime has
// no callable global under the configured sink name.
var ErrErrorSinkNotFound = errors.New(`gojahost: error sink function not found`)

// Host binds an [auxcallback.Engine] into a Goja runtime. The engine reports
// callback failures to the host, which forwards them to a global function.
//
// Bind, ReportError and any drain must run on the loop goroutine. Defer and
// Post may be called from any goroutine.
type Host struct {
	loop    *eventloop.Loop
	js      *eventloop.JS
	runtime *goja.Runtime
	engine  *auxcallback.Engine
	opts    *hostOptions
	sink    goja.Callable
}

// New creates a Host, and the engine it drives, over the given registry.
func New(loop *eventloop.Loop, runtime *goja.Runtime, registry *auxcallback.Registry, opts ...Option) (*Host, error) {
	if loop == nil {
		return nil, errors.New(`gojahost: loop cannot be nil`)
	}
	if runtime == nil {
		return nil, errors.New(`gojahost: runtime cannot be nil`)
	}

	options, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	js, err := eventloop.NewJS(loop)
	if err != nil {
		return nil, fmt.Errorf(`gojahost: failed to create JS adapter: %w`, err)
	}

	h := &Host{
		loop:    loop,
		js:      js,
		runtime: runtime,
		opts:    options,
	}

	h.engine, err = auxcallback.NewEngine(registry, append(options.engineOptions, auxcallback.WithErrorSink(h))...)
	if err != nil {
		return nil, err
	}

	return h, nil
}

// Engine returns the engine the host drives.
func (h *Host) Engine() *auxcallback.Engine { return h.engine }

// Loop returns the loop the host drains on.
func (h *Host) Loop() *eventloop.Loop { return h.loop }

// Bind installs the drain function as a runtime global.
func (h *Host) Bind() error {
	return h.runtime.Set(h.opts.functionName, h.processCallbacks)
}

func (h *Host) processCallbacks(call goja.FunctionCall) goja.Value {
	args := make([]any, len(call.Arguments))
	for i, arg := range call.Arguments {
		args[i] = exportArg(arg)
	}

	result, err := h.engine.Dispatch(h.opts.ctx, args...)
	if err != nil {
		var usageErr *auxcallback.UsageError
		if errors.As(err, &usageErr) {
			panic(h.runtime.NewTypeError(`%s`, usageErr.Error()))
		}
		panic(h.runtime.NewGoError(err))
	}

	if result == nil {
		return goja.Undefined()
	}
	return h.runtime.ToValue(result)
}

func exportArg(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

// ReportError implements [auxcallback.ErrorSink], calling the configured
// global function with message. The function is resolved on first use, and
// cached once found.
func (h *Host) ReportError(message string) error {
	if h.sink == nil {
		fn, ok := goja.AssertFunction(h.runtime.Get(h.opts.errorSinkName))
		if !ok {
			return fmt.Errorf(`%w: %s`, ErrErrorSinkNotFound, h.opts.errorSinkName)
		}
		h.sink = fn
	}
	_, err := h.sink(goja.Undefined(), h.runtime.ToValue(message))
	return err
}

// Defer queues cb on the channel id, creating the channel if necessary, then
// wakes the loop. Blocks while the channel is full.
func (h *Host) Defer(id string, cb auxcallback.Callback) error {
	if err := h.engine.Registry().SenderByIDInsert(id).Send(cb); err != nil {
		return err
	}
	return h.loop.Wake()
}

// Post queues cb like [Host.Defer], then submits a drain of channel id to the
// loop.
func (h *Host) Post(id string, cb auxcallback.Callback) error {
	if err := h.engine.Registry().SenderByIDInsert(id).Send(cb); err != nil {
		return err
	}
	return h.loop.Submit(func() {
		h.engine.Process(id)
	})
}

// Tick schedules a bounded drain of every channel on the loop, once per
// interval, each running for at most budget. The returned function cancels
// it.
func (h *Host) Tick(interval, budget time.Duration) (stop func() error, err error) {
	if interval < time.Millisecond {
		return nil, fmt.Errorf(`gojahost: tick interval must be at least 1ms, got %s`, interval)
	}
	id, err := h.js.SetInterval(func() {
		h.engine.ProcessAllFor(budget)
	}, int(interval/time.Millisecond))
	if err != nil {
		return nil, err
	}
	return func() error { return h.js.ClearInterval(id) }, nil
}

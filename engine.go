// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"
)

// Engine drains the channels of a [Registry], invoking callbacks.
//
// All Process methods are meant to be called from a single goroutine (the
// host goroutine), never concurrently with each other. This is not enforced:
// overlapping calls are only counted and logged, see [Stats.Overlapping].
type Engine struct {
	registry *Registry
	sink     ErrorSink
	logger   *logiface.Logger[logiface.Event]
	now      func() time.Time
	stats    engineStats
	active   atomic.Int32
	mode     BlockingMode
}

// NewEngine creates an engine that drains the channels of registry.
func NewEngine(registry *Registry, opts ...EngineOption) (*Engine, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	cfg, err := resolveEngineOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Engine{
		registry: registry,
		sink:     cfg.sink,
		logger:   cfg.logger,
		now:      cfg.now,
		mode:     cfg.blockingMode,
	}, nil
}

// Registry returns the registry the engine drains.
func (e *Engine) Registry() *Registry { return e.registry }

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats { return e.stats.snapshot() }

// ProcessAll visits every channel, invoking callbacks as they are received.
//
// WARNING: With the default [BlockForever] mode, ProcessAll waits for more
// callbacks on the first channel it visits, and channels are never closed,
// so it will not return until ctx is done (returning the context error).
// Use [WithBlockingMode] with [BlockUntilEmpty] to instead move on from
// each channel once it is empty, in which case nil is returned once every
// channel has been visited.
//
// Creating channels while ProcessAll is running is not supported.
func (e *Engine) ProcessAll(ctx context.Context) error {
	defer e.enter(`process_all`)()

	if err := ctx.Err(); err != nil {
		return err
	}

	for id, ch := range e.registry.All() {
		receiver := ch.Receiver()
		for {
			var cb Callback
			if e.mode == BlockUntilEmpty {
				var ok bool
				if cb, ok = receiver.TryRecv(); !ok {
					break
				}
			} else {
				var err error
				if cb, err = receiver.Recv(ctx); err != nil {
					return err
				}
			}
			e.call(id, cb)
		}
	}

	return nil
}

// ProcessAllFor visits every channel, invoking the callbacks that are
// already queued, without waiting for more. After each callback, the time
// elapsed is compared against budget, and, if exceeded, the entire drain
// stops, leaving any remaining callbacks (in any channel) queued.
//
// The return value reports whether the elapsed time exceeds budget, as of
// returning.
//
// Creating channels while ProcessAllFor is running is not supported.
func (e *Engine) ProcessAllFor(budget time.Duration) bool {
	defer e.enter(`process_all_for`)()

	start := e.now()

Channels:
	for id, ch := range e.registry.All() {
		receiver := ch.Receiver()
		for {
			cb, ok := receiver.TryRecv()
			if !ok {
				break
			}
			e.call(id, cb)
			if e.exceeded(start, budget) {
				break Channels
			}
		}
	}

	return e.finish(``, start, budget)
}

// ProcessAllForMillis is [Engine.ProcessAllFor] with the budget given in
// milliseconds.
func (e *Engine) ProcessAllForMillis(millis uint64) bool {
	return e.ProcessAllFor(millisDuration(millis))
}

// ProcessFor behaves like [Engine.ProcessAllFor], for the channel identified
// by id only, which will be created, if it doesn't exist. Note that at least
// one callback is invoked, if any are queued, even if budget is zero.
func (e *Engine) ProcessFor(id string, budget time.Duration) bool {
	defer e.enter(`process_for`)()

	receiver := e.registry.ReceiverByIDInsert(id)
	start := e.now()

	for {
		cb, ok := receiver.TryRecv()
		if !ok {
			break
		}
		e.call(id, cb)
		if e.exceeded(start, budget) {
			break
		}
	}

	return e.finish(id, start, budget)
}

// ProcessForMillis is [Engine.ProcessFor] with the budget given in
// milliseconds.
func (e *Engine) ProcessForMillis(id string, millis uint64) bool {
	return e.ProcessFor(id, millisDuration(millis))
}

// Process invokes the callbacks queued on the channel identified by id,
// which will be created, if it doesn't exist. Only the callbacks queued at
// the time of the call are invoked, i.e. any sent while draining (including
// by the callbacks themselves) are left for the next drain.
func (e *Engine) Process(id string) {
	defer e.enter(`process`)()

	receiver := e.registry.ReceiverByIDInsert(id)

	for n := receiver.Len(); n > 0; n-- {
		cb, ok := receiver.TryRecv()
		if !ok {
			break
		}
		e.call(id, cb)
	}
}

// call invokes cb, reporting any failure. It never fails.
func (e *Engine) call(id string, cb Callback) {
	e.stats.invoked.Add(1)

	err := invoke(cb)
	if err == nil {
		return
	}

	e.stats.failed.Add(1)

	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		e.stats.panicked.Add(1)
		e.logger.Err().
			Str(`channel`, id).
			Err(err).
			Log(`callback panicked`)
	}

	// best effort: the sink's own failure is discarded
	if err := reportError(e.sink, err.Error()); err != nil {
		e.stats.reportFailures.Add(1)
		e.logger.Debug().
			Str(`channel`, id).
			Err(err).
			Log(`error sink failed`)
		return
	}

	e.stats.reported.Add(1)
}

func (e *Engine) exceeded(start time.Time, budget time.Duration) bool {
	return e.now().Sub(start) > budget
}

func (e *Engine) finish(id string, start time.Time, budget time.Duration) bool {
	elapsed := e.now().Sub(start)
	if elapsed <= budget {
		return false
	}
	e.stats.budgetExceeded.Add(1)
	b := e.logger.Info().Limit()
	if id != `` {
		b = b.Str(`channel`, id)
	}
	b.Dur(`budget`, budget).
		Dur(`elapsed`, elapsed).
		Log(`callback processing exceeded time budget`)
	return true
}

// enter tracks in-progress drains, returning the function to call on exit.
func (e *Engine) enter(operation string) func() {
	if e.active.Add(1) > 1 {
		e.stats.overlapping.Add(1)
		e.logger.Warning().
			Str(`operation`, operation).
			Log(`callback processing overlaps another drain`)
	}
	return func() { e.active.Add(-1) }
}

func millisDuration(millis uint64) time.Duration {
	const maxMillis = uint64(math.MaxInt64 / int64(time.Millisecond))
	if millis > maxMillis {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(millis) * time.Millisecond
}

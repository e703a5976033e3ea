// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

import (
	"fmt"
	"time"

	"github.com/joeycumines/logiface"
)

// BlockingMode controls how [Engine.ProcessAll] treats an empty channel.
type BlockingMode int

const (
	// BlockForever waits on each channel for the next callback, indefinitely.
	// Channels are never closed, so ProcessAll only returns once its context
	// is done. This is the default.
	BlockForever BlockingMode = iota

	// BlockUntilEmpty moves on to the next channel as soon as the current
	// one is empty, making ProcessAll a full non-blocking drain.
	BlockUntilEmpty
)

// String returns the string representation of the mode.
func (m BlockingMode) String() string {
	switch m {
	case BlockForever:
		return "BlockForever"
	case BlockUntilEmpty:
		return "BlockUntilEmpty"
	default:
		return fmt.Sprintf("BlockingMode(%d)", int(m))
	}
}

// registryOptions holds configuration options for Registry creation.
type registryOptions struct {
	capacity int
}

// engineOptions holds configuration options for Engine creation.
type engineOptions struct {
	sink         ErrorSink
	logger       *logiface.Logger[logiface.Event]
	now          func() time.Time
	blockingMode BlockingMode
}

// --- Registry Options ---

// RegistryOption configures a Registry instance.
type RegistryOption interface {
	applyRegistry(*registryOptions) error
}

// registryOptionImpl implements RegistryOption.
type registryOptionImpl struct {
	applyRegistryFunc func(*registryOptions) error
}

func (r *registryOptionImpl) applyRegistry(opts *registryOptions) error {
	return r.applyRegistryFunc(opts)
}

// WithCapacity sets the capacity of each channel, defaults to
// [DefaultCapacity]. Sending blocks while a channel is full.
func WithCapacity(capacity int) RegistryOption {
	return &registryOptionImpl{func(opts *registryOptions) error {
		if capacity < 1 {
			return ErrInvalidCapacity
		}
		opts.capacity = capacity
		return nil
	}}
}

// resolveRegistryOptions applies RegistryOption instances to registryOptions.
func resolveRegistryOptions(opts []RegistryOption) (*registryOptions, error) {
	cfg := &registryOptions{
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRegistry(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// --- Engine Options ---

// EngineOption configures an Engine instance.
type EngineOption interface {
	applyEngine(*engineOptions) error
}

// engineOptionImpl implements EngineOption.
type engineOptionImpl struct {
	applyEngineFunc func(*engineOptions) error
}

func (e *engineOptionImpl) applyEngine(opts *engineOptions) error {
	return e.applyEngineFunc(opts)
}

// WithErrorSink sets where the messages of failed callbacks are reported.
// Defaults to [DiscardSink]. A nil sink restores the default.
func WithErrorSink(sink ErrorSink) EngineOption {
	return &engineOptionImpl{func(opts *engineOptions) error {
		if sink == nil {
			sink = DiscardSink{}
		}
		opts.sink = sink
		return nil
	}}
}

// WithLogger sets the structured logger used by the engine. Logging is
// disabled by default.
func WithLogger(logger *logiface.Logger[logiface.Event]) EngineOption {
	return &engineOptionImpl{func(opts *engineOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithBlockingMode sets the behavior of [Engine.ProcessAll], see
// [BlockingMode]. Defaults to [BlockForever].
func WithBlockingMode(mode BlockingMode) EngineOption {
	return &engineOptionImpl{func(opts *engineOptions) error {
		switch mode {
		case BlockForever, BlockUntilEmpty:
		default:
			return fmt.Errorf("auxcallback: unknown blocking mode: %s", mode)
		}
		opts.blockingMode = mode
		return nil
	}}
}

// WithClock sets the time source used to measure time budgets. Defaults to
// [time.Now]. Intended for testing.
func WithClock(now func() time.Time) EngineOption {
	return &engineOptionImpl{func(opts *engineOptions) error {
		if now == nil {
			now = time.Now
		}
		opts.now = now
		return nil
	}}
}

// resolveEngineOptions applies EngineOption instances to engineOptions.
func resolveEngineOptions(opts []EngineOption) (*engineOptions, error) {
	cfg := &engineOptions{
		sink:         DiscardSink{},
		now:          time.Now,
		blockingMode: BlockForever,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyEngine(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gojahost

import (
	"context"
	"errors"

	"github.com/joeycumines/go-auxcallback"
)

const (
	// DefaultFunctionName is the global the drain entry point is bound to.
	DefaultFunctionName = `process_callbacks`

	// DefaultErrorSinkName is the global function callback failures are
	// reported to.
	DefaultErrorSinkName = `stack_trace`
)

// Option configures a [Host].
type Option interface {
	applyHost(*hostOptions) error
}

type optionImpl struct {
	applyHostFunc func(*hostOptions) error
}

func (o *optionImpl) applyHost(opts *hostOptions) error {
	return o.applyHostFunc(opts)
}

type hostOptions struct {
	ctx           context.Context
	functionName  string
	errorSinkName string
	engineOptions []auxcallback.EngineOption
}

// WithFunctionName sets the global name [Host.Bind] installs the drain
// function under. Defaults to [DefaultFunctionName].
func WithFunctionName(name string) Option {
	return &optionImpl{func(opts *hostOptions) error {
		if name == `` {
			return errors.New(`gojahost: function name must not be empty`)
		}
		opts.functionName = name
		return nil
	}}
}

// WithErrorSinkName sets the global function that failure messages are
// passed to. Defaults to [DefaultErrorSinkName].
func WithErrorSinkName(name string) Option {
	return &optionImpl{func(opts *hostOptions) error {
		if name == `` {
			return errors.New(`gojahost: error sink name must not be empty`)
		}
		opts.errorSinkName = name
		return nil
	}}
}

// WithContext sets the context passed to blocking drains, i.e.
// process_callbacks called with no arguments. Canceling it is the only way
// such a drain returns, under [auxcallback.BlockForever].
func WithContext(ctx context.Context) Option {
	return &optionImpl{func(opts *hostOptions) error {
		if ctx == nil {
			return errors.New(`gojahost: context must not be nil`)
		}
		opts.ctx = ctx
		return nil
	}}
}

// WithEngineOptions passes options through to [auxcallback.NewEngine].
// Any [auxcallback.WithErrorSink] is overridden, the host is always the sink.
func WithEngineOptions(opts ...auxcallback.EngineOption) Option {
	return &optionImpl{func(o *hostOptions) error {
		o.engineOptions = append(o.engineOptions, opts...)
		return nil
	}}
}

func resolveOptions(opts []Option) (*hostOptions, error) {
	cfg := &hostOptions{
		ctx:           context.Background(),
		functionName:  DefaultFunctionName,
		errorSinkName: DefaultErrorSinkName,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyHost(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

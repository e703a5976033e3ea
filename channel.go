// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

import (
	"context"
)

// DefaultCapacity is the number of callbacks each channel may buffer, before
// senders block.
const DefaultCapacity = 100000

// Channel is a bounded FIFO queue of callbacks, owned by a [Registry].
// Channels are never closed.
type Channel struct {
	ch chan Callback
	id string
}

// Sender is the enqueue handle of a [Channel]. It may be copied freely, and
// used from any goroutine. The zero value is not usable.
type Sender struct {
	ch chan<- Callback
}

// Receiver is the dequeue handle of a [Channel]. It may be copied freely, and
// used from any goroutine, though callbacks are normally received by the
// [Engine], on the host goroutine. The zero value is not usable.
type Receiver struct {
	ch <-chan Callback
}

func newChannel(id string, capacity int) *Channel {
	return &Channel{
		id: id,
		ch: make(chan Callback, capacity),
	}
}

// ID returns the identifier the channel is registered under.
func (c *Channel) ID() string { return c.id }

// Sender returns a handle for enqueuing callbacks.
func (c *Channel) Sender() Sender { return Sender{ch: c.ch} }

// Receiver returns a handle for dequeuing callbacks.
func (c *Channel) Receiver() Receiver { return Receiver{ch: c.ch} }

// Len returns the number of queued callbacks.
func (c *Channel) Len() int { return len(c.ch) }

// Cap returns the capacity of the channel.
func (c *Channel) Cap() int { return cap(c.ch) }

// Send enqueues cb, blocking while the channel is full.
func (s Sender) Send(cb Callback) error {
	if err := s.check(cb); err != nil {
		return err
	}
	s.ch <- cb
	return nil
}

// SendContext enqueues cb, blocking while the channel is full, until ctx is
// done, in which case the context error is returned.
func (s Sender) SendContext(ctx context.Context, cb Callback) error {
	if err := s.check(cb); err != nil {
		return err
	}
	// avoid sending if already canceled
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.ch <- cb:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend enqueues cb if there is space, without blocking. It returns false
// if the channel is full, or cb is nil, or the receiver is a zero value.
func (s Sender) TrySend(cb Callback) bool {
	if s.check(cb) != nil {
		return false
	}
	select {
	case s.ch <- cb:
		return true
	default:
		return false
	}
}

// Valid reports whether the handle refers to a channel.
func (s Sender) Valid() bool { return s.ch != nil }

func (s Sender) check(cb Callback) error {
	if s.ch == nil {
		return ErrZeroHandle
	}
	if cb == nil {
		return ErrNilCallback
	}
	return nil
}

// Recv dequeues the next callback, blocking until one is available, or ctx
// is done.
func (r Receiver) Recv(ctx context.Context) (Callback, error) {
	if r.ch == nil {
		return nil, ErrZeroHandle
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case cb := <-r.ch:
		return cb, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryRecv dequeues the next callback, if any, without blocking.
func (r Receiver) TryRecv() (Callback, bool) {
	select {
	case cb := <-r.ch:
		return cb, true
	default:
		return nil, false
	}
}

// C exposes the underlying channel, for use in select statements.
func (r Receiver) C() <-chan Callback { return r.ch }

// Len returns the number of queued callbacks.
func (r Receiver) Len() int { return len(r.ch) }

// Valid reports whether the handle refers to a channel.
func (r Receiver) Valid() bool { return r.ch != nil }

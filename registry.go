// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

import (
	"iter"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"
)

// Registry maps channel identifiers to channels. Identifiers are
// case-sensitive. Channels are created on first use, exactly once per
// identifier, and are never removed.
//
// A Registry is safe for concurrent use. Callers should not create channels
// (the *Insert methods) while a drain over [Registry.All] is in progress,
// see [Engine.ProcessAll] and [Engine.ProcessAllFor].
type Registry struct {
	channels *xsync.MapOf[string, *Channel]
	capacity int
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	cfg, err := resolveRegistryOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Registry{
		channels: xsync.NewMapOf[string, *Channel](),
		capacity: cfg.capacity,
	}, nil
}

// Channel returns the channel for id, creating it if it doesn't exist.
func (r *Registry) Channel(id string) *Channel {
	// valueFn is called at most once per key, under the bucket lock
	ch, _ := r.channels.LoadOrCompute(id, func() *Channel {
		return newChannel(id, r.capacity)
	})
	return ch
}

// SenderByIDInsert returns the sender for id, creating the channel if it
// doesn't exist.
func (r *Registry) SenderByIDInsert(id string) Sender {
	return r.Channel(id).Sender()
}

// ReceiverByIDInsert returns the receiver for id, creating the channel if it
// doesn't exist.
func (r *Registry) ReceiverByIDInsert(id string) Receiver {
	return r.Channel(id).Receiver()
}

// SenderByID returns the sender for id, or false if there is no such
// channel. It never creates a channel.
func (r *Registry) SenderByID(id string) (Sender, bool) {
	ch, ok := r.channels.Load(id)
	if !ok {
		return Sender{}, false
	}
	return ch.Sender(), true
}

// ReceiverByID returns the receiver for id, or false if there is no such
// channel. It never creates a channel.
func (r *Registry) ReceiverByID(id string) (Receiver, bool) {
	ch, ok := r.channels.Load(id)
	if !ok {
		return Receiver{}, false
	}
	return ch.Receiver(), true
}

// All iterates over every channel. Each call starts a fresh iteration, which
// reflects the contents of the registry as it progresses, meaning channels
// created concurrently may or may not be visited. The order is unspecified.
func (r *Registry) All() iter.Seq2[string, *Channel] {
	return func(yield func(string, *Channel) bool) {
		r.channels.Range(yield)
	}
}

// Len returns the number of channels.
func (r *Registry) Len() int {
	return r.channels.Size()
}

// IDs returns the identifiers of all channels, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, r.channels.Size())
	for id := range r.All() {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Capacity returns the capacity of channels created by this registry.
func (r *Registry) Capacity() int {
	return r.capacity
}

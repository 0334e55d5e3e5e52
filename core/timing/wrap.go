// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package timing

import (
	"context"

	"codeberg.org/stopclock/stopclock/core/dataprovider"
)

// Run executes command immediately and submits a timing entry for the time
// executing it took. When timing is disabled for ctx, the command runs once
// with no measurement overhead.
func Run(ctx context.Context, name string, command func()) {
	if command == nil {
		panic("timing: command must not be nil")
	}

	if !enabledCheck(ctx) {
		command()

		return
	}

	stopwatch := forceStart(ctx, name)
	defer mustComplete(stopwatch)

	command()
}

// Supply executes supplier immediately, returns its results, and submits a
// timing entry for the time it took. The entry is submitted on every exit
// path: error returns and panics included, with panics re-propagating after
// submission. When timing is disabled for ctx, the supplier runs unwrapped.
func Supply[T any](ctx context.Context, name string, supplier func() (T, error)) (T, error) {
	if supplier == nil {
		panic("timing: supplier must not be nil")
	}

	if !enabledCheck(ctx) {
		return supplier()
	}

	stopwatch := forceStart(ctx, name)
	defer mustComplete(stopwatch)

	return supplier()
}

// WrapListener wraps an event callback so that each invocation submits a
// timing entry for the time the wrapped callback took. The original
// listener is returned unmodified when timing is disabled for ctx at wrap
// time.
//
// The wrap is request-scoped: measurements from every invocation are
// submitted against the response bound to ctx.
func WrapListener[E any](ctx context.Context, name string, listener func(E)) func(E) {
	if listener == nil {
		panic("timing: listener must not be nil")
	}

	if !enabledCheck(ctx) {
		return listener
	}

	return func(event E) {
		stopwatch := forceStart(ctx, name)
		defer mustComplete(stopwatch)

		listener(event)
	}
}

// WrapProvider wraps a data provider so that fetching submits a timing
// entry named "<name>.fetch" and counting one named "<name>.size", each
// covering the wrapped call including its error paths. The original
// provider is returned unmodified when timing is disabled for ctx at wrap
// time. The wrapped provider's semantics are untouched.
func WrapProvider[T any](
	ctx context.Context,
	name string,
	provider dataprovider.Provider[T],
) dataprovider.Provider[T] {
	if provider == nil {
		panic("timing: provider must not be nil")
	}

	if !enabledCheck(ctx) {
		return provider
	}

	return &timedProvider[T]{inner: provider, name: name}
}

// timedProvider decorates a provider with per-operation stopwatches. The
// construction already checked the enabled status, so every operation
// force-starts.
type timedProvider[T any] struct {
	inner dataprovider.Provider[T]
	name  string
}

func (p *timedProvider[T]) Fetch(ctx context.Context, q dataprovider.Query) ([]T, error) {
	stopwatch := forceStart(ctx, p.name+".fetch")
	defer mustComplete(stopwatch)

	return p.inner.Fetch(ctx, q)
}

func (p *timedProvider[T]) Count(ctx context.Context, q dataprovider.Query) (int, error) {
	stopwatch := forceStart(ctx, p.name+".size")
	defer mustComplete(stopwatch)

	return p.inner.Count(ctx, q)
}

// mustComplete completes a stopwatch on behalf of a wrapping adapter. The
// adapted callback shapes have no error channel to carry a submission
// failure, and measuring outside an active request is a programming error,
// so failures panic to stay visible during development.
func mustComplete(s *Stopwatch) {
	if err := s.Complete(); err != nil {
		panic(err)
	}
}

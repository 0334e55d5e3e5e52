// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package dataprovider

import (
	"context"
	"time"
)

// SlowProvider delays every operation of an inner provider by a fixed
// duration. It simulates a slow backing store so that emitted timings are
// visible in browser developer tools.
type SlowProvider[T any] struct {
	Inner Provider[T]

	FetchDelay time.Duration
	CountDelay time.Duration
}

// Fetch sleeps for FetchDelay, then delegates to the inner provider.
func (p *SlowProvider[T]) Fetch(ctx context.Context, q Query) ([]T, error) {
	if err := sleep(ctx, p.FetchDelay); err != nil {
		return nil, err
	}

	return p.Inner.Fetch(ctx, q)
}

// Count sleeps for CountDelay, then delegates to the inner provider.
func (p *SlowProvider[T]) Count(ctx context.Context, q Query) (int, error) {
	if err := sleep(ctx, p.CountDelay); err != nil {
		return 0, err
	}

	return p.Inner.Count(ctx, q)
}

// sleep blocks for d or until ctx is canceled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

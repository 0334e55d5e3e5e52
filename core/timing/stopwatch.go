// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package timing

import (
	"context"
	"time"
)

// Stopwatch measures the time it takes to complete an operation and submits
// a timing entry when the operation completes. Instances are created by
// [Start]; call [Stopwatch.Complete] to submit the measurement.
//
// A stopwatch is either active or inert. Inert stopwatches are handed out
// when timing was disabled at start time; their Complete is a permanent
// no-op, regardless of later enabled-check changes.
type Stopwatch struct {
	// ctx is the unit of work the measurement belongs to; nil marks the
	// inert variant.
	ctx   context.Context
	name  string
	start time.Time
}

// inertStopwatch is shared by every disabled Start call; nothing is
// allocated on the disabled path.
var inertStopwatch = &Stopwatch{}

// Start starts a stopwatch that submits a timing entry with the given name
// when completed. The enabled check runs once, here: completing the returned
// stopwatch submits nothing if timing was disabled for ctx at this moment,
// even if it is enabled later.
func Start(ctx context.Context, name string) *Stopwatch {
	if !enabledCheck(ctx) {
		return inertStopwatch
	}

	return forceStart(ctx, name)
}

// forceStart starts a stopwatch that will always submit an entry when
// completed. Used internally by paths that already checked the enabled
// status before starting.
func forceStart(ctx context.Context, name string) *Stopwatch {
	if name == "" {
		panic("timing: entry name must not be empty")
	}

	return &Stopwatch{ctx: ctx, name: name, start: time.Now()}
}

// Complete marks the completion of the operation being timed. It records
// the time elapsed since the stopwatch was started and submits a timing
// entry against the response bound to the stopwatch's context.
//
// time.Time carries a monotonic clock reading, so the elapsed time is
// immune to wall-clock adjustments.
//
// Calling Complete multiple times submits multiple entries with the same
// name; the duration is not reset between invocations, each entry reflects
// the elapsed time since the original start.
//
// Complete on an inert stopwatch does nothing and returns nil.
func (s *Stopwatch) Complete() error {
	if s.ctx == nil {
		return nil
	}

	return NewEntry(s.name).SetDuration(time.Since(s.start)).ForceSubmit(s.ctx)
}

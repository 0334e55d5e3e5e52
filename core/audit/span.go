// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"runtime/trace"
	"time"

	"github.com/rs/zerolog/log"
)

// Span represents one inbound HTTP request in flight.
type Span struct {
	// set automatically by Begin/End
	task     *trace.Task
	start    time.Time
	duration time.Duration

	RequestID  string
	Method     string
	Path       string
	StatusCode int
	Error      error
}

// Begin records the span start and opens a runtime/trace task for the request.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http.request")

	return ctx
}

// End closes the span. Safe to call more than once; only the first call
// records the duration.
func (span *Span) End() {
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()

		span.task = nil
	}
}

func (span Span) Log() {
	event := log.Debug()

	event.Str("sys", "http")
	event.Str("method", span.Method)
	event.Str("path", span.Path)
	event.Int("status_code", span.StatusCode)
	event.Dur("dur", span.duration)
	event.Str("request_id", span.RequestID)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

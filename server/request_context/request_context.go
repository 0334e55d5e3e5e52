// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package request_context provides per-request state management for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"
	"sync"
	"time"

	"codeberg.org/stopclock/stopclock/core/idgen"
)

// RequestContext carries request-scoped data through the middleware chain.
//
// This data survives the entire lifetime of a single HTTP request and is safe
// for concurrent access from multiple goroutines handling the same request,
// except for Response which is bound once by middleware before any handler
// runs.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// StartedAt is the time the request entered the middleware chain.
	StartedAt time.Time

	// Response is the response handle bound to this request, resolved by
	// the timing emitter at submission time. Nil until middleware (or a
	// test) calls BindResponse.
	Response any

	// StatusCode is the status written to the client, recorded by the
	// error handling middleware for logging.
	StatusCode int

	// RequestError is the error the route handler returned, if any.
	RequestError error

	// responseMu serializes writes to the bound response. Handlers may
	// complete stopwatches from several goroutines of one request, and
	// http.Header is a plain map.
	responseMu sync.Mutex
}

// BindResponse hands the response object for this request to the emitter.
//
// Called once per request by the server timing middleware; tests bind an
// httptest.ResponseRecorder the same way.
func (rc *RequestContext) BindResponse(response any) {
	rc.Response = response
}

// WithResponseLock runs fn while holding the response lock, so concurrent
// submissions against the same request append headers one at a time.
func (rc *RequestContext) WithResponseLock(fn func()) {
	rc.responseMu.Lock()
	defer rc.responseMu.Unlock()

	fn()
}

// requestContextKeyType defines a unique type for a RequestContext key.
type requestContextKeyType struct{}

// requestContextKey is a unique key used to access RequestContext
// values from a context.Context.
var requestContextKey = requestContextKeyType{}

// WithRequestContext initializes a new request context and attaches it to
// the parent context.
//
// This is called once per request, first in the middleware chain.
func WithRequestContext(ctx context.Context) context.Context {
	rc := RequestContext{
		RequestID: idgen.Make(),
		StartedAt: time.Now(),
	}

	return context.WithValue(ctx, requestContextKey, &rc)
}

// FromContext extracts the RequestContext from a context, always returning
// a valid pointer.
//
// If no context is found, returns a zero-value instance.
func FromContext(ctx context.Context) *RequestContext {
	if v := ctx.Value(requestContextKey); v != nil {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}

	return &RequestContext{}
}

// FromRequest is a convenience wrapper for extracting RequestContext
// directly from HTTP requests.
//
// Prefer this in handlers that have access to the *http.Request object.
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}

// Bound reports whether a RequestContext is attached to ctx, i.e. whether
// the caller is executing within request processing.
func Bound(ctx context.Context) bool {
	_, ok := ctx.Value(requestContextKey).(*RequestContext)

	return ok
}

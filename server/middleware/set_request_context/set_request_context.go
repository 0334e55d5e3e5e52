// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"

	"codeberg.org/stopclock/stopclock/server/request_context"
)

// WithRequestContext is a middleware that attaches a RequestContext to each
// HTTP request. It must run before any middleware or handler that measures
// or logs.
func WithRequestContext(w http.ResponseWriter, r *http.Request, next http.Handler) {
	next.ServeHTTP(w, r.WithContext(request_context.WithRequestContext(r.Context())))
}

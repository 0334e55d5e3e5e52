// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"codeberg.org/stopclock/stopclock/server/request_context"
)

// WithServerTiming binds the live response to the request context so that
// timing entries submitted anywhere below this point land on it as
// Server-Timing headers.
//
// Must run after WithRequestContext and before any handler that measures:
// headers can no longer be added once the response body is started.
func WithServerTiming(w http.ResponseWriter, r *http.Request, next http.Handler) {
	request_context.FromRequest(r).BindResponse(w)

	next.ServeHTTP(w, r)
}

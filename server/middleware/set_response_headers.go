// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	baseHeaders = http.Header{
		"Referrer-Policy":        {"no-referrer"},
		"X-Frame-Options":        {"DENY"},
		"X-Content-Type-Options": {"nosniff"},
	}

	// csp is static: the demo pages load no external resources.
	csp = strings.Join([]string{
		"base-uri 'self'",
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"frame-ancestors 'none'",
	}, "; ") + ";"
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	headers.Set("Content-Security-Policy", csp)
	headers.Set("Cache-Control", cacheControl(r.URL.Path))

	next.ServeHTTP(w, r)
}

// cacheControl picks cache directives per path. Timing output is per
// request, so demo pages must never be served from a shared cache.
func cacheControl(path string) string {
	if strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".json") {
		return "max-age=86400"
	}

	return "private, no-cache"
}

// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import "net/http"

// Middleware processes a request before (and possibly instead of) next.
type Middleware func(w http.ResponseWriter, r *http.Request, next http.Handler)

// Wrap turns a Middleware plus its next handler into a plain http.Handler.
func Wrap(m Middleware, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m(w, r, next)
	}
}

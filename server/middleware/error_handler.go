// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/stopclock/stopclock/core/audit"
	"codeberg.org/stopclock/stopclock/server/request_context"
	"codeberg.org/stopclock/stopclock/server/routes"
)

// CatchError wraps HTTP handlers that return an error, providing
// centralized error handling, response buffering, and request logging.
//
// The handler's output is buffered using an httptest.ResponseRecorder. If
// the handler returns an error without having written an error status code
// itself, the buffered response is discarded and a generic 500 page is
// rendered instead. Otherwise the buffered response is written to the
// client as-is.
//
// Timing headers bypass the buffer: the emitter writes to the live
// response bound by WithServerTiming, and maps.Copy below never drops
// headers the recorder does not carry.
//
// Finally, the completed request is logged via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			RequestID: ctx.RequestID,
			Method:    r.Method,
			Path:      r.URL.Path,
		}

		_ = span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		err := handler(recorder, r)

		ctx.RequestError = err

		if err != nil && recorder.Code < http.StatusBadRequest {
			// Unhandled error. Discard the recorder's contents and render
			// the generic error page.
			ctx.StatusCode = http.StatusInternalServerError

			w.WriteHeader(ctx.StatusCode)
			routes.ErrorPage(w, r)
		} else {
			if recorder.Code == 0 {
				recorder.Code = http.StatusOK
			}

			ctx.StatusCode = recorder.Code
			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError
		span.Log()
	}
}

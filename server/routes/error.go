// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/stopclock/stopclock/server/request_context"
)

type errorData struct {
	StatusCode int
	StatusText string
	Message    string
}

// ErrorPage renders an error page for the status and error recorded in the
// request context.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	ctx := request_context.FromRequest(r)

	data := errorData{
		StatusCode: ctx.StatusCode,
		StatusText: http.StatusText(ctx.StatusCode),
	}

	if ctx.RequestError != nil {
		data.Message = ctx.RequestError.Error()
	}

	if err := templates.ExecuteTemplate(w, "error.html", data); err != nil {
		log.Err(err).Msg("Failed to render the error page")
	}
}

// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package routes contains the demo pages. Every handler follows the
func(w, r) error shape and is mounted through middleware.CatchError.

The pages exist to produce Server-Timing headers worth looking at in
browser developer tools; the rendered HTML is deliberately plain.
*/
package routes

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed views/*.html
var viewsFS embed.FS

var templates = template.Must(template.ParseFS(viewsFS, "views/*.html"))

// render executes the named template into w.
func render(w http.ResponseWriter, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return templates.ExecuteTemplate(w, name, data)
}

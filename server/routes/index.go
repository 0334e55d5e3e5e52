// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/stopclock/stopclock/core/timing"
)

// IndexPage is the handler for the root page.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	stopwatch := timing.Start(r.Context(), "renderIndex")
	defer func() { _ = stopwatch.Complete() }()

	return render(w, "index.html", nil)
}

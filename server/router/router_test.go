// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/stopclock/stopclock/config"
	"codeberg.org/stopclock/stopclock/core/timing"
	"codeberg.org/stopclock/stopclock/server/middleware"
	"codeberg.org/stopclock/stopclock/server/routes"
)

func TestRouterEndToEnd(t *testing.T) {
	config.Global.SetDefaults()
	config.Global.Development.InDevelopment = true
	config.Global.Demo.FetchDelay = 0
	config.Global.Demo.CountDelay = 0
	config.Global.Demo.LoadDelay = 0

	require.NoError(t, routes.Setup())

	router := NewRouter()

	// Routes are registered by hand rather than via DefineRoutes: the
	// debug block behind it starts the flight recorder, which cannot be
	// started twice within one process.
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))
	router.HandleFunc("GET /grid", middleware.CatchError(routes.GridPage))
	router.RegisterMiddleware()

	t.Run("index emits timing headers", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Values(timing.HeaderName))
		assert.Equal(t, "no-referrer", recorder.Header().Get("Referrer-Policy"))
	})

	t.Run("grid emits provider timings", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/grid", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		joined := strings.Join(recorder.Header().Values(timing.HeaderName), "\n")
		assert.Contains(t, joined, "personGrid.fetch;dur=")
		assert.Contains(t, joined, "personGrid.size;dur=")
	})

	t.Run("trailing slash is normalized", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/grid/", nil))

		assert.Equal(t, http.StatusPermanentRedirect, recorder.Code)
		assert.Equal(t, "/grid", recorder.Header().Get("Location"))
	})

	t.Run("unknown path is not found", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"time"

	"codeberg.org/stopclock/stopclock/config"
	"codeberg.org/stopclock/stopclock/server/assets"
	"codeberg.org/stopclock/stopclock/server/middleware"
	"codeberg.org/stopclock/stopclock/server/routes"
)

// DefineRoutes sets up all the routes for the application.
func (router *Router) DefineRoutes() {
	fileServerHandler := fileServer()

	// Serve specific files from the root of the 'assets' subdirectory.
	router.Handle("GET /robots.txt", fileServerHandler)

	// Patterns ending in "/" are prefix matches.
	router.Handle("GET /css/", fileServerHandler)

	// Demo page routes
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))
	router.HandleFunc("POST /hello", middleware.CatchError(routes.HelloAction))
	router.HandleFunc("GET /grid", middleware.CatchError(routes.GridPage))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	staticContentFS, err := fs.Sub(assets.FS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to create sub-filesystem for embedded 'assets' directory: %w", err))
	}

	fileServer := http.FileServer(http.FS(staticContentFS))

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "max-age=3600")
		fileServer.ServeHTTP(w, r)
	}
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	if err := flightRecorder.Start(); err != nil {
		panic(err)
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, r *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}

// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/stopclock/stopclock/config"
	"codeberg.org/stopclock/stopclock/server/middleware"
	"codeberg.org/stopclock/stopclock/server/middleware/limiter"
	"codeberg.org/stopclock/stopclock/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware() {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.NormalizeURL)                // handle trailing slashes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.WithServerTiming)            // binds the response for the timing emitter
	router.Use(middleware.SetResponseHeaders)          // all pages need this

	if config.Global.Limiter.Enabled {
		limiter.Init()

		router.Use(limiter.Evaluate)
	}
}

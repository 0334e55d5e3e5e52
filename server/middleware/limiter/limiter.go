// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter provides optional per-client rate limiting for the demo
server. Each client IP gets a token bucket; buckets idle for a while are
reaped by a background goroutine between Init and Fini.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/stopclock/stopclock/config"
)

const (
	cleanupInterval = time.Minute
	clientTTL       = 3 * time.Minute
)

// client tracks the token bucket for one IP.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	mu      sync.Mutex
	clients map[string]*client
	done    chan struct{}
)

// Init prepares the limiter state and starts the cleanup goroutine.
// Must be called before the first request when the limiter is enabled.
func Init() {
	clients = make(map[string]*client)
	done = make(chan struct{})

	go cleanupLoop()
}

// Fini stops the cleanup goroutine.
func Fini() {
	if done != nil {
		close(done)

		done = nil
	}
}

// Evaluate is the rate limiting middleware. Requests over the per-client
// budget are rejected with 429 before reaching the handler.
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ip := clientIP(r)

	if !allow(ip) {
		log.Warn().
			Str("ip", ip).
			Str("path", r.URL.Path).
			Msg("Rate limit exceeded")

		w.Header().Set("Retry-After", "1")
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

// allow takes one token from ip's bucket, creating the bucket on first
// sight.
func allow(ip string) bool {
	mu.Lock()
	defer mu.Unlock()

	c, ok := clients[ip]
	if !ok {
		c = &client{
			limiter: rate.NewLimiter(
				rate.Limit(config.Global.Limiter.RequestsPerSecond),
				config.Global.Limiter.Burst,
			),
		}
		clients[ip] = c
	}

	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

// clientIP extracts the bare IP from the request's remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			reapIdleClients()
		}
	}
}

func reapIdleClients() {
	mu.Lock()
	defer mu.Unlock()

	cutoff := time.Now().Add(-clientTTL)

	for ip, c := range clients {
		if c.lastSeen.Before(cutoff) {
			delete(clients, ip)
		}
	}
}

// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/stopclock/stopclock/server/request_context"
)

func TestWithServerTiming_BindsLiveResponse(t *testing.T) {
	t.Parallel()

	var bound any

	handler := Wrap(WithServerTiming, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bound = request_context.FromRequest(r).Response

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(request_context.WithRequestContext(req.Context()))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	require.NotNil(t, bound)
	assert.Equal(t, http.ResponseWriter(recorder), bound)
}

func TestSetResponseHeaders(t *testing.T) {
	t.Parallel()

	handler := Wrap(SetResponseHeaders, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	headers := recorder.Header()
	assert.Equal(t, "no-referrer", headers.Get("Referrer-Policy"))
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Contains(t, headers.Get("Content-Security-Policy"), "default-src 'self'")
	assert.Equal(t, "private, no-cache", headers.Get("Cache-Control"))
}

func TestSetResponseHeaders_StaticFileCaching(t *testing.T) {
	t.Parallel()

	handler := Wrap(SetResponseHeaders, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assert.Equal(t, "max-age=86400", recorder.Header().Get("Cache-Control"))
}

// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package request_context

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestContext(t *testing.T) {
	t.Parallel()

	ctx := WithRequestContext(context.Background())

	require.True(t, Bound(ctx))

	rc := FromContext(ctx)
	assert.NotEmpty(t, rc.RequestID)
	assert.False(t, rc.StartedAt.IsZero())
	assert.Nil(t, rc.Response)
}

func TestFromContext_Unbound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	require.False(t, Bound(ctx))

	// Always returns a usable instance, never nil.
	rc := FromContext(ctx)
	require.NotNil(t, rc)
	assert.Empty(t, rc.RequestID)
}

func TestBindResponse(t *testing.T) {
	t.Parallel()

	ctx := WithRequestContext(context.Background())
	rec := httptest.NewRecorder()

	FromContext(ctx).BindResponse(rec)

	// The same instance is visible through every extraction of the context.
	assert.Same(t, any(rec), FromContext(ctx).Response)
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/grid", nil)
	r = r.WithContext(WithRequestContext(r.Context()))

	rc := FromRequest(r)
	assert.NotEmpty(t, rc.RequestID)
}

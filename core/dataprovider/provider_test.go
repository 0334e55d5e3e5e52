// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package dataprovider

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/stopclock/stopclock/core/pagecache"
)

func newStringProvider(items ...string) *SliceProvider[string] {
	return &SliceProvider[string]{
		Items: items,
		Match: func(item, filter string) bool {
			return strings.Contains(item, filter)
		},
	}
}

func TestSliceProvider_Fetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newStringProvider("alpha", "beta", "gamma", "delta")

	testCases := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "no constraints",
			query: Query{},
			want:  []string{"alpha", "beta", "gamma", "delta"},
		},
		{
			name:  "offset and limit",
			query: Query{Offset: 1, Limit: 2},
			want:  []string{"beta", "gamma"},
		},
		{
			name:  "offset beyond end",
			query: Query{Offset: 10},
			want:  []string{},
		},
		{
			name:  "limit beyond end",
			query: Query{Offset: 3, Limit: 10},
			want:  []string{"delta"},
		},
		{
			name:  "filter",
			query: Query{Filter: "a"},
			want:  []string{"alpha", "beta", "gamma", "delta"},
		},
		{
			name:  "filter with window",
			query: Query{Filter: "eta", Limit: 1},
			want:  []string{"beta"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := provider.Fetch(ctx, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSliceProvider_Count(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newStringProvider("alpha", "beta", "gamma")

	count, err := provider.Count(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Count ignores offset and limit.
	count, err = provider.Count(ctx, Query{Offset: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = provider.Count(ctx, Query{Filter: "mm"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQueryKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0:0:", Query{}.Key())
	assert.Equal(t, "5:10:ann", Query{Offset: 5, Limit: 10, Filter: "ann"}.Key())
	assert.NotEqual(t, Query{Offset: 1}.Key(), Query{Limit: 1}.Key())
}

func TestSlowProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := &SlowProvider[string]{
		Inner:      newStringProvider("alpha", "beta"),
		FetchDelay: 30 * time.Millisecond,
		CountDelay: 15 * time.Millisecond,
	}

	start := time.Now()
	items, err := provider.Fetch(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, items)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	start = time.Now()
	count, err := provider.Count(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestSlowProvider_Cancellation(t *testing.T) {
	t.Parallel()

	provider := &SlowProvider[string]{
		Inner:      newStringProvider("alpha"),
		FetchDelay: time.Minute,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := provider.Fetch(ctx, Query{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPeopleProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := PeopleProvider{}

	total, err := provider.Count(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, 30, total)

	page, err := provider.Fetch(ctx, Query{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "Aino Korhonen", page[0].Name)
	assert.Equal(t, "Platform", page[0].Team)

	filtered, err := provider.Fetch(ctx, Query{Filter: "Person"})
	require.NoError(t, err)
	require.Len(t, filtered, 3)
	assert.Equal(t, "Person 1", filtered[0].Name)

	count, err := provider.Count(ctx, Query{Filter: "Person"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Quotes are stripped rather than breaking the gjson pattern.
	_, err = provider.Fetch(ctx, Query{Filter: `"`})
	require.NoError(t, err)
}

// countingProvider tracks how many times each operation reaches it.
type countingProvider struct {
	inner   Provider[string]
	fetches int
	counts  int
	err     error
}

func (p *countingProvider) Fetch(ctx context.Context, q Query) ([]string, error) {
	p.fetches++

	if p.err != nil {
		return nil, p.err
	}

	return p.inner.Fetch(ctx, q)
}

func (p *countingProvider) Count(ctx context.Context, q Query) (int, error) {
	p.counts++

	if p.err != nil {
		return 0, p.err
	}

	return p.inner.Count(ctx, q)
}

func TestCachingProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	counting := &countingProvider{inner: newStringProvider("alpha", "beta", "gamma")}

	cache, err := pagecache.New(8, true)
	require.NoError(t, err)

	provider := NewCachingProvider[string](counting, cache)
	query := Query{Limit: 2}

	assert.False(t, provider.Cached(query))

	items, err := provider.Fetch(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, items)
	assert.True(t, provider.Cached(query))

	// Second fetch is served from the cache.
	items, err = provider.Fetch(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, items)
	assert.Equal(t, 1, counting.fetches)

	// Counts are cached independently.
	for range 2 {
		count, err := provider.Count(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	}

	assert.Equal(t, 1, counting.counts)
}

func TestCachingProvider_InnerError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wantErr := errors.New("backing store down")
	counting := &countingProvider{inner: newStringProvider("alpha"), err: wantErr}

	cache, err := pagecache.New(8, false)
	require.NoError(t, err)

	provider := NewCachingProvider[string](counting, cache)

	_, err = provider.Fetch(ctx, Query{})
	assert.ErrorIs(t, err, wantErr)

	// Failures are not cached.
	assert.False(t, provider.Cached(Query{}))
}

// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package dataprovider

import (
	"context"
	"encoding/json"
	"strconv"

	"codeberg.org/stopclock/stopclock/core/pagecache"
)

// CachingProvider memoizes the pages and counts of an inner provider in a
// pagecache.Cache, keyed by query. Stale data is acceptable for the demo;
// there is no TTL or invalidation.
type CachingProvider[T any] struct {
	inner Provider[T]
	cache *pagecache.Cache
}

// NewCachingProvider wraps inner with the given cache.
func NewCachingProvider[T any](inner Provider[T], cache *pagecache.Cache) *CachingProvider[T] {
	return &CachingProvider[T]{inner: inner, cache: cache}
}

// Cached reports whether the page for q is already cached, without
// promoting it in the LRU order.
func (p *CachingProvider[T]) Cached(q Query) bool {
	return p.cache.Contains("fetch:" + q.Key())
}

// Fetch returns the cached page for q, falling back to the inner provider
// and caching the result on a miss.
func (p *CachingProvider[T]) Fetch(ctx context.Context, q Query) ([]T, error) {
	key := "fetch:" + q.Key()

	if raw, ok := p.cache.Get(key); ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		// A corrupt page falls through to the inner provider.
	}

	items, err := p.inner.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(items); err == nil {
		p.cache.Put(key, raw)
	}

	return items, nil
}

// Count returns the cached count for q, falling back to the inner provider
// and caching the result on a miss.
func (p *CachingProvider[T]) Count(ctx context.Context, q Query) (int, error) {
	key := "count:" + q.Key()

	if raw, ok := p.cache.Get(key); ok {
		if count, err := strconv.Atoi(string(raw)); err == nil {
			return count, nil
		}
	}

	count, err := p.inner.Count(ctx, q)
	if err != nil {
		return 0, err
	}

	p.cache.Put(key, []byte(strconv.Itoa(count)))

	return count, nil
}

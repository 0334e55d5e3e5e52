// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package dataprovider abstracts paged, filtered data retrieval behind two
operations: fetching one page of items and counting the items a query
matches. Decorators in this package and in core/timing wrap a Provider
without altering its semantics.
*/
package dataprovider

import (
	"context"
	"fmt"
)

// Query describes one page of a filtered data set.
type Query struct {
	// Offset is the index of the first item to return.
	Offset int
	// Limit caps the number of returned items. Zero or negative means
	// no limit.
	Limit int
	// Filter is a provider-interpreted match expression; empty matches
	// every item.
	Filter string
}

// Key returns a stable cache key for the query.
func (q Query) Key() string {
	return fmt.Sprintf("%d:%d:%s", q.Offset, q.Limit, q.Filter)
}

// Provider is an abstraction over paged, filtered data retrieval.
type Provider[T any] interface {
	// Fetch returns the page of items selected by q.
	Fetch(ctx context.Context, q Query) ([]T, error)

	// Count returns the total number of items matching q's filter,
	// ignoring its offset and limit.
	Count(ctx context.Context, q Query) (int, error)
}

// SliceProvider serves items from an in-memory slice.
type SliceProvider[T any] struct {
	Items []T

	// Match reports whether an item passes the query filter. When nil,
	// every item matches.
	Match func(item T, filter string) bool
}

// Fetch returns the page of matching items selected by q.
func (p *SliceProvider[T]) Fetch(_ context.Context, q Query) ([]T, error) {
	return page(p.matching(q.Filter), q), nil
}

// Count returns the number of items matching q's filter.
func (p *SliceProvider[T]) Count(_ context.Context, q Query) (int, error) {
	return len(p.matching(q.Filter)), nil
}

func (p *SliceProvider[T]) matching(filter string) []T {
	if filter == "" || p.Match == nil {
		return p.Items
	}

	matched := make([]T, 0, len(p.Items))

	for _, item := range p.Items {
		if p.Match(item, filter) {
			matched = append(matched, item)
		}
	}

	return matched
}

// page applies q's offset and limit to items, returning a fresh slice.
func page[T any](items []T, q Query) []T {
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if q.Limit > 0 && offset+q.Limit < end {
		end = offset + q.Limit
	}

	out := make([]T, end-offset)
	copy(out, items[offset:end])

	return out
}

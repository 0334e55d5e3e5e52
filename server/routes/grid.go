// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"codeberg.org/stopclock/stopclock/config"
	"codeberg.org/stopclock/stopclock/core/dataprovider"
	"codeberg.org/stopclock/stopclock/core/timing"
)

type gridData struct {
	People     []dataprovider.Person
	Total      int
	Filter     string
	Offset     int
	PrevOffset int
	NextOffset int
	HasPrev    bool
	HasNext    bool
}

// GridPage is the handler for the /grid page. The backing provider is
// wrapped so that the page load emits personGrid.fetch and personGrid.size
// entries, mirroring what a component-driven UI would show for a lazy
// data grid.
func GridPage(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := gridQuery(r)

	provider := timing.WrapProvider[dataprovider.Person](ctx, "personGrid", gridProvider)

	var (
		people []dataprovider.Person
		total  int
	)

	// Fetch and count concurrently, the way a grid component issues them.
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		people, err = provider.Fetch(groupCtx, query)

		return err
	})

	group.Go(func() error {
		var err error
		total, err = provider.Count(groupCtx, query)

		return err
	})

	if err := group.Wait(); err != nil {
		return err
	}

	return render(w, "grid.html", gridData{
		People:     people,
		Total:      total,
		Filter:     query.Filter,
		Offset:     query.Offset,
		PrevOffset: max(query.Offset-query.Limit, 0),
		NextOffset: query.Offset + query.Limit,
		HasPrev:    query.Offset > 0,
		HasNext:    query.Offset+query.Limit < total,
	})
}

// gridQuery reads paging parameters from the request, clamping bad input
// to defaults rather than failing the page.
func gridQuery(r *http.Request) dataprovider.Query {
	query := dataprovider.Query{
		Limit:  config.Global.Demo.PageSize,
		Filter: r.FormValue("filter"),
	}

	if offset, err := strconv.Atoi(r.FormValue("offset")); err == nil && offset > 0 {
		query.Offset = offset
	}

	return query
}

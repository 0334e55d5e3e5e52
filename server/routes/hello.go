// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"
	"time"

	"codeberg.org/stopclock/stopclock/config"
	"codeberg.org/stopclock/stopclock/core/dataprovider"
	"codeberg.org/stopclock/stopclock/core/timing"
)

type helloData struct {
	Greeting string
	People   []dataprovider.Person
}

// HelloAction is the handler for the hello button on the index page. It
// exercises most of the measurement surface: a wrapped callback, a
// duration-less cacheMiss marker, a timed data load and a stopwatch around
// rendering.
func HelloAction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	name := r.FormValue("name")
	if name == "" {
		name = "stranger"
	}

	var greeting string

	greet := timing.WrapListener(ctx, "hello", func(who string) {
		greeting = fmt.Sprintf("Hello, %s!", who)
	})
	greet(name)

	query := dataprovider.Query{Limit: config.Global.Demo.PageSize}

	if !helloCached(query) {
		if err := timing.Set(ctx, "cacheMiss"); err != nil {
			return err
		}
	}

	var (
		people  []dataprovider.Person
		loadErr error
	)

	timing.Run(ctx, "loadData", func() {
		time.Sleep(config.Global.Demo.LoadDelay)

		people, loadErr = helloProvider.Fetch(ctx, query)
	})

	if loadErr != nil {
		return loadErr
	}

	stopwatch := timing.Start(ctx, "addText")
	defer func() { _ = stopwatch.Complete() }()

	return render(w, "hello.html", helloData{Greeting: greeting, People: people})
}

// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"codeberg.org/stopclock/stopclock/config"
	"codeberg.org/stopclock/stopclock/core/dataprovider"
	"codeberg.org/stopclock/stopclock/core/pagecache"
)

var (
	// gridProvider backs the /grid page. No cache in front: the grid
	// should show the backing store delay on every request.
	gridProvider dataprovider.Provider[dataprovider.Person]

	// helloProvider backs the /hello action, with a page cache in front
	// when enabled so that repeated clicks show the cacheMiss entry only
	// on the first one.
	helloProvider dataprovider.Provider[dataprovider.Person]

	// helloCached reports whether the page for a query is already held by
	// helloProvider's cache.
	helloCached func(dataprovider.Query) bool
)

// Setup builds the demo provider chains from the loaded configuration.
// Must be called after config.LoadConfig and before the first request.
func Setup() error {
	slow := &dataprovider.SlowProvider[dataprovider.Person]{
		Inner:      dataprovider.PeopleProvider{},
		FetchDelay: config.Global.Demo.FetchDelay,
		CountDelay: config.Global.Demo.CountDelay,
	}

	gridProvider = slow
	helloProvider = slow
	helloCached = func(dataprovider.Query) bool { return false }

	if config.Global.Cache.Enabled {
		cache, err := pagecache.New(config.Global.Cache.Size, config.Global.Cache.Compress)
		if err != nil {
			return err
		}

		caching := dataprovider.NewCachingProvider[dataprovider.Person](slow, cache)
		helloProvider = caching
		helloCached = caching.Cached
	}

	return nil
}

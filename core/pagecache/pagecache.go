// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package pagecache provides a thread-safe, fixed-capacity least-recently-used
cache for serialized result pages. Keys are strings, values are byte slices.
When created with compression enabled, pages may be stored zstd-compressed
and are transparently decompressed on retrieval.
*/
package pagecache

import (
	"container/list"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidCapacity = errors.New("must provide a positive capacity")

// Cache is a fixed-capacity LRU cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache struct {
	capacity  int
	mu        sync.Mutex
	evictList *list.List               // eviction order, most recent at the front
	entries   map[string]*list.Element // keys to their linked-list elements

	zstdEnc *zstd.Encoder // nil when compression is disabled
	zstdDec *zstd.Decoder
}

// pageEntry holds the key/page pair stored in each linked-list element.
type pageEntry struct {
	key        string
	page       []byte
	compressed bool
}

// New creates a cache holding at most capacity pages.
//
// If compress is true, pages are stored zstd-compressed whenever that
// reduces their size and are transparently decompressed by [Cache.Get].
func New(capacity int, compress bool) (*Cache, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	c := &Cache{
		capacity:  capacity,
		evictList: list.New(),
		entries:   make(map[string]*list.Element),
	}

	if compress {
		// A nil writer/reader lets us use EncodeAll/DecodeAll without streams.
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.zstdEnc = enc
		c.zstdDec = dec
	}

	return c, nil
}

// Put stores page under key, making it the most recently used entry.
// Put reports whether an eviction occurred.
func (c *Cache) Put(key string, page []byte) bool {
	// Compression is the heavy part; do it before taking the lock. The zstd
	// encoder supports concurrent EncodeAll calls.
	stored, compressed := c.prepare(page)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(elem)

		entry := elem.Value.(*pageEntry)
		entry.page = stored
		entry.compressed = compressed

		return false
	}

	c.entries[key] = c.evictList.PushFront(&pageEntry{
		key:        key,
		page:       stored,
		compressed: compressed,
	})

	evicted := c.evictList.Len() > c.capacity
	if evicted {
		c.removeOldest()
	}

	return evicted
}

// Get retrieves the page for key and marks it as most recently used.
// The second result reports whether the key was found.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()

	elem, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()

		return nil, false
	}

	c.evictList.MoveToFront(elem)

	entry := elem.Value.(*pageEntry)
	stored, compressed := entry.page, entry.compressed

	c.mu.Unlock()

	return c.restore(stored, compressed)
}

// Contains reports whether key is cached, without modifying the LRU order.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]

	return ok
}

// Len returns the current number of cached pages.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}

// removeOldest drops the least recently used page. Caller must hold the lock.
func (c *Cache) removeOldest() {
	elem := c.evictList.Back()
	if elem == nil {
		return
	}

	c.evictList.Remove(elem)
	delete(c.entries, elem.Value.(*pageEntry).key)
}

// prepare returns the bytes to store for page, compressing when enabled and
// effective. The uncompressed path stores a copy so callers cannot mutate
// cached data.
func (c *Cache) prepare(page []byte) (stored []byte, compressed bool) {
	if len(page) == 0 {
		return page, false
	}

	if c.zstdEnc != nil {
		encoded := c.zstdEnc.EncodeAll(page, nil)
		if len(encoded) < len(page) {
			return encoded, true
		}
	}

	copied := make([]byte, len(page))
	copy(copied, page)

	return copied, false
}

// restore returns the page bytes to the caller, decompressing if needed.
// A copy is returned on the uncompressed path to keep cached data immutable.
func (c *Cache) restore(stored []byte, compressed bool) ([]byte, bool) {
	if !compressed {
		if stored == nil {
			return nil, true
		}

		copied := make([]byte, len(stored))
		copy(copied, stored)

		return copied, true
	}

	if c.zstdDec == nil {
		return nil, false
	}

	decoded, err := c.zstdDec.DecodeAll(stored, nil)
	if err != nil {
		// Decompression failure should be unreachable; treat the page as absent.
		return nil, false
	}

	return decoded, true
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package options

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickascher/datagrid/cache"
	"github.com/patrickascher/datagrid/logger"
	"golang.org/x/sync/singleflight"
)

// cachePrefix of the option entries in the cache manager.
const cachePrefix = "options_"

// Loader fetches the raw option response of a request.
type Loader interface {
	LoadOptions(ctx context.Context, req Request) (interface{}, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, req Request) (interface{}, error)

// LoadOptions calls the function.
func (fn LoaderFunc) LoadOptions(ctx context.Context, req Request) (interface{}, error) {
	return fn(ctx, req)
}

// Cache deduplicates and caches option loads.
// Entries are keyed by field, resolved URL and dependent value. An empty result is cached
// as well, so a failing or empty endpoint is not requested again.
type Cache struct {
	loader  Loader
	manager cache.Manager
	log     logger.Manager
	ttl     time.Duration

	group     singleflight.Group
	mutex     sync.Mutex
	dependent map[string]string
}

// NewCache creates an option cache.
// A ttl of 0 keeps the entries until they are invalidated.
func NewCache(loader Loader, manager cache.Manager, log logger.Manager, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Cache{loader: loader, manager: manager, log: log, ttl: ttl, dependent: make(map[string]string)}
}

// Load returns the options of the field.
// Concurrent loads of the same key share one loader call. Loader failures are logged
// and result in an empty cached list. A canceled or expired context is not cached.
func (c *Cache) Load(ctx context.Context, field string, load *Load, form FormState) []Item {
	if load == nil {
		return nil
	}

	req := load.Request(field, form)
	dep := load.dependent(form)
	prefix, name := cachePrefix+field, req.URL+"|"+dep

	if load.DependsOn != "" {
		c.mutex.Lock()
		prev, seen := c.dependent[field]
		c.dependent[field] = dep
		c.mutex.Unlock()
		if seen && prev != dep {
			c.Invalidate(field)
		}
	}

	if items, ok := c.cached(prefix, name); ok {
		return items
	}

	v, _, _ := c.group.Do(prefix+"_"+name, func() (interface{}, error) {
		// a caller which arrives after the load finished finds the cached entry.
		if items, ok := c.cached(prefix, name); ok {
			return items, nil
		}
		raw, err := c.loader.LoadOptions(ctx, req)
		items := []Item{}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return items, nil
		}
		if err != nil {
			c.warn(field, req.URL, err)
		} else {
			items = load.Items(raw)
		}
		if err = c.manager.Set(prefix, name, items, c.ttl); err != nil {
			c.warn(field, req.URL, err)
		}
		return items, nil
	})

	return copyItems(v.([]Item))
}

// Invalidate clears all cached options of the field.
func (c *Cache) Invalidate(field string) {
	_ = c.manager.DeletePrefix(cachePrefix + field)
}

func (c *Cache) cached(prefix, name string) ([]Item, bool) {
	i, err := c.manager.Get(prefix, name)
	if err != nil {
		return nil, false
	}
	items, ok := i.Value().([]Item)
	if !ok {
		return nil, false
	}
	return copyItems(items), true
}

func (c *Cache) warn(field string, url string, err error) {
	if c.log != nil {
		c.log.WithFields(logger.Fields{"field": field, "url": url}).Warning(err.Error())
	}
}

func copyItems(items []Item) []Item {
	rv := make([]Item, len(items))
	copy(rv, items)
	return rv
}

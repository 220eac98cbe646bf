// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"fmt"
	"log"

	"github.com/patrickascher/datagrid/cache"
	"github.com/patrickascher/datagrid/cache/memory"
)

// init registers the memory provider.
func init() {
	if err := Register(MEMORY, newMemory); err != nil {
		log.Fatal(err)
	}
}

// cachePrefix of the persisted keys inside the cache manager.
const cachePrefix = "store"

// FromCache returns a store which keeps its values in the given cache manager without expiration.
func FromCache(m cache.Manager) Interface {
	return &cacheStore{manager: m}
}

// newMemory creates an isolated in-process store.
// The options are passed to the memory cache provider.
func newMemory(opt interface{}) (Interface, error) {
	p, err := memory.New(opt)
	if err != nil {
		return nil, err
	}
	return FromCache(cache.NewManager(p)), nil
}

type cacheStore struct {
	manager cache.Manager
}

// Get returns a copy of the stored value.
func (c *cacheStore) Get(key string) ([]byte, error) {
	i, err := c.manager.Get(cachePrefix, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	b, ok := i.Value().([]byte)
	if !ok {
		return nil, fmt.Errorf("store: value of %s is not a byte slice", key)
	}
	return append([]byte(nil), b...), nil
}

func (c *cacheStore) Set(key string, value []byte) error {
	return c.manager.Set(cachePrefix, key, append([]byte(nil), value...), cache.NoExpiration)
}

func (c *cacheStore) Remove(key string) error {
	if err := c.manager.Delete(cachePrefix, key); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cache provides a prefixed cache manager for any backend that implements cache.Interface.
// The grid uses it for resolved option lists and as the in-process state store.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickascher/datagrid/registry"
)

// Defaults
const (
	// DefaultPrefix of the cache manager.
	DefaultPrefix = ""
	// DefaultExpiration will be replaced by the manager default expiration.
	DefaultExpiration = 0
	// NoExpiration for the cache item.
	NoExpiration = -1
)

// registryPrefix for the providers registry name.
const registryPrefix = "cache_"

// All predefined providers are listed here.
const (
	MEMORY = "memory"
)

// Provider is the constructor a cache backend registers.
type Provider func(opt interface{}) (Interface, error)

var (
	managerMutex sync.Mutex
	managerCache = make(map[string]Manager)
)

// Interface description for cache providers.
type Interface interface {
	// Get returns an Item by its name.
	// Error must return if it does not exist or is expired.
	Get(name string) (Item, error)
	// All cached items.
	All() ([]Item, error)
	// Set an item by its name, value and lifetime.
	// If cache.NoExpiration is set, the item should not get deleted.
	Set(name string, value interface{}, exp time.Duration) error
	// Delete a value by its name.
	// Error must return if it does not exist.
	Delete(name string) error
	// DeleteAll items.
	DeleteAll() error
	// GC will be called once as goroutine.
	// Backends with their own eviction can return immediately.
	GC()
}

// Item interface for the cached object.
type Item interface {
	Name() string
	Value() interface{}
	Created() time.Time
	Expiration() time.Duration
}

// New returns the manager of a registered cache provider.
// The provider is only initialized once, after that the same manager will return.
func New(provider string, options interface{}) (Manager, error) {
	managerMutex.Lock()
	defer managerMutex.Unlock()

	name := registryPrefix + provider
	if m, ok := managerCache[name]; ok {
		return m, nil
	}

	fn, err := registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	p, err := fn.(Provider)(options)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	m := NewManager(p)
	managerCache[name] = m

	go p.GC()
	return m, nil
}

// Register a new cache provider by name.
func Register(name string, provider Provider) error {
	return registry.Set(registryPrefix+name, provider)
}

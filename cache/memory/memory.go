// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package memory implements the cache.Interface and registers a memory provider.
// All operations are using a sync.RWMutex for synchronization.
package memory

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/patrickascher/datagrid/cache"
	"github.com/patrickascher/datagrid/structer"
)

// init registers the memory provider.
func init() {
	if err := cache.Register(cache.MEMORY, New); err != nil {
		log.Fatal(err)
	}
}

// defaults
const (
	defaultGCInterval = 5 * time.Minute
)

// Error messages
var (
	ErrNameNotExist = "memory: name %v does not exist"
)

// Options for the memory provider
type Options struct {
	// GCInterval defines how often the GC will run (default: every 5 minutes).
	GCInterval time.Duration
}

// New creates a memory cache by the given options.
// Zero option values are filled with the defaults.
func New(opt interface{}) (cache.Interface, error) {
	options := Options{}
	if o, ok := opt.(Options); ok {
		options = o
	}
	if err := structer.Merge(&options, Options{GCInterval: defaultGCInterval}); err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	return &memory{options: options, items: make(map[string]item)}, nil
}

// memory cache provider.
type memory struct {
	mutex   sync.RWMutex
	options Options
	items   map[string]item
}

// Get returns the value of the given name.
// Error will return if the name does not exist or is expired.
func (m *memory) Get(name string) (cache.Item, error) {
	m.mutex.RLock()
	i, ok := m.items[name]
	m.mutex.RUnlock()

	if !ok || i.expired() {
		return nil, fmt.Errorf(ErrNameNotExist, name)
	}
	return &i, nil
}

// All returns all items of the cache which are not expired.
func (m *memory) All() ([]cache.Item, error) {
	m.mutex.RLock()
	var items []cache.Item
	for k := range m.items {
		i := m.items[k]
		if !i.expired() {
			items = append(items, &i)
		}
	}
	m.mutex.RUnlock()
	return items, nil
}

// Set key/value pair.
// The expiration can be set by time.Duration or forever with cache.NoExpiration.
func (m *memory) Set(name string, value interface{}, exp time.Duration) error {
	m.mutex.Lock()
	m.items[name] = item{name: name, val: value, created: time.Now(), exp: exp}
	m.mutex.Unlock()
	return nil
}

// Delete removes a given name from the cache.
// Error will return if the name does not exist.
func (m *memory) Delete(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.items[name]; !ok {
		return fmt.Errorf(ErrNameNotExist, name)
	}
	delete(m.items, name)
	return nil
}

// DeleteAll removes all items from the cache.
func (m *memory) DeleteAll() error {
	m.mutex.Lock()
	m.items = make(map[string]item)
	m.mutex.Unlock()
	return nil
}

// GC is an infinite loop which deletes the expired items in the configured interval.
func (m *memory) GC() {
	for {
		<-time.After(m.options.GCInterval)
		if keys := m.expiredKeys(); len(keys) != 0 {
			m.mutex.Lock()
			for _, key := range keys {
				delete(m.items, key)
			}
			m.mutex.Unlock()
		}
	}
}

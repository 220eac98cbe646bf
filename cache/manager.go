// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

const prefixSeparator = "_"

// Error messages.
var (
	ErrNotExist = "cache: prefix %s does not exist"
)

// Manager for cache operations.
type Manager interface {
	Get(prefix string, name string) (Item, error)
	Prefix(prefix string) ([]Item, error)
	Set(prefix string, name string, value interface{}, exp time.Duration) error
	Exist(prefix string, name string) bool
	Delete(prefix string, name string) error
	DeletePrefix(prefix string) error
	DeleteAll() error

	Stats(prefix string, name string) Stat
	SetDefaultExpiration(time.Duration)
}

// Stat holds the hit and miss counter of a cache item.
type Stat struct {
	Hit  int
	Miss int
}

// manager keeps track of the prefixes and statistics of the provider items.
type manager struct {
	mutex             sync.Mutex
	defaultExpiration time.Duration
	provider          Interface
	prefixes          map[string]map[string]struct{}
	statistics        map[string]Stat
}

// NewManager wraps the given provider.
func NewManager(provider Interface) Manager {
	return &manager{
		defaultExpiration: time.Hour,
		provider:          provider,
		prefixes:          make(map[string]map[string]struct{}),
		statistics:        make(map[string]Stat),
	}
}

// SetDefaultExpiration is used when cache.DefaultExpiration is passed to Set.
func (m *manager) SetDefaultExpiration(exp time.Duration) {
	m.mutex.Lock()
	m.defaultExpiration = exp
	m.mutex.Unlock()
}

// Get returns an Item by its prefix and name.
func (m *manager) Get(prefix string, name string) (Item, error) {
	key := prefixedName(prefix, name)
	i, err := m.provider.Get(key)

	m.mutex.Lock()
	s := m.statistics[key]
	if err != nil {
		s.Miss++
	} else {
		s.Hit++
	}
	m.statistics[key] = s
	m.mutex.Unlock()

	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return i, nil
}

// Prefix returns all items of the prefix, sorted by name.
// Items which are expired on the provider side are skipped.
func (m *manager) Prefix(prefix string) ([]Item, error) {
	names := m.names(prefix)
	if names == nil {
		return nil, fmt.Errorf(ErrNotExist, prefix)
	}

	var items []Item
	for _, name := range names {
		if i, err := m.Get(prefix, name); err == nil {
			items = append(items, i)
		}
	}
	return items, nil
}

// Set an item by its prefix, name, value and lifetime.
func (m *manager) Set(prefix string, name string, value interface{}, exp time.Duration) error {
	m.mutex.Lock()
	if exp == DefaultExpiration {
		exp = m.defaultExpiration
	}
	if _, ok := m.prefixes[prefix]; !ok {
		m.prefixes[prefix] = make(map[string]struct{})
	}
	m.prefixes[prefix][name] = struct{}{}
	m.mutex.Unlock()

	if err := m.provider.Set(prefixedName(prefix, name), value, exp); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}

// Exist reports whether the item can be fetched.
func (m *manager) Exist(prefix string, name string) bool {
	_, err := m.Get(prefix, name)
	return err == nil
}

// Delete a value by its prefix and name.
func (m *manager) Delete(prefix string, name string) error {
	if err := m.provider.Delete(prefixedName(prefix, name)); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	m.forget(prefix, name)
	return nil
}

// DeletePrefix deletes all items of the prefix.
// Items which are already gone on the provider side are only removed from the bookkeeping.
func (m *manager) DeletePrefix(prefix string) error {
	names := m.names(prefix)
	if names == nil {
		return fmt.Errorf(ErrNotExist, prefix)
	}
	for _, name := range names {
		_ = m.provider.Delete(prefixedName(prefix, name))
		m.forget(prefix, name)
	}
	return nil
}

// DeleteAll items.
func (m *manager) DeleteAll() error {
	if err := m.provider.DeleteAll(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	m.mutex.Lock()
	m.prefixes = make(map[string]map[string]struct{})
	m.statistics = make(map[string]Stat)
	m.mutex.Unlock()
	return nil
}

// Stats returns the hit and miss counter of the item.
func (m *manager) Stats(prefix string, name string) Stat {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.statistics[prefixedName(prefix, name)]
}

// names returns a sorted copy of the prefix names or nil if the prefix is unknown.
func (m *manager) names(prefix string) []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	p, ok := m.prefixes[prefix]
	if !ok {
		return nil
	}
	rv := make([]string, 0, len(p))
	for n := range p {
		rv = append(rv, n)
	}
	sort.Strings(rv)
	return rv
}

func (m *manager) forget(prefix string, name string) {
	m.mutex.Lock()
	if p, ok := m.prefixes[prefix]; ok {
		delete(p, name)
		if len(p) == 0 {
			delete(m.prefixes, prefix)
		}
	}
	delete(m.statistics, prefixedName(prefix, name))
	m.mutex.Unlock()
}

// prefixedName returns the name with the prefix and separator.
func prefixedName(prefix string, name string) string {
	if prefix == DefaultPrefix {
		return name
	}
	return prefix + prefixSeparator + name
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memory

import (
	"time"

	"github.com/patrickascher/datagrid/cache"
)

// item implements the cache.Item interface.
type item struct {
	name    string
	val     interface{}
	exp     time.Duration
	created time.Time
}

// Name returns the cache name.
func (i *item) Name() string {
	return i.name
}

// Value returns the cached value.
func (i *item) Value() interface{} {
	return i.val
}

// Created returns the cache creation time.
func (i *item) Created() time.Time {
	return i.created
}

// Expiration returns the cache life time.
func (i *item) Expiration() time.Duration {
	return i.exp
}

// expired reports whether the lifetime is exceeded.
func (i item) expired() bool {
	if i.exp == cache.NoExpiration {
		return false
	}
	return time.Since(i.created) > i.exp
}

// expiredKeys returns all expired cache items by name.
func (m *memory) expiredKeys() (names []string) {
	m.mutex.RLock()
	for _, i := range m.items {
		if i.expired() {
			names = append(names, i.name)
		}
	}
	m.mutex.RUnlock()
	return names
}

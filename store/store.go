// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package store provides the key-value persistence port of the grid.
//
// Keys follow the naming convention grid_{gridID}_{aspect} for grid preferences
// and search_{gridID} for the saved searches of a grid.
// Providers register by name and are created with New.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/patrickascher/datagrid/logger"
	"github.com/patrickascher/datagrid/registry"
)

// registryPrefix for the providers registry name.
const registryPrefix = "store_"

// All predefined providers are listed here.
const (
	MEMORY = "memory"
	PUDGE  = "pudge"
)

// Aspects of the persisted grid state.
const (
	Joins             = "joins"
	VisibleColumns    = "visibleColumns"
	SearchFields      = "searchFields"
	SearchableColumns = "searchableColumns"
	ShowDeleted       = "showDeleted"
	Overrides         = "overrides"
)

// Error messages.
var (
	ErrNotFound = errors.New("store: key not found")
	ErrProvider = "store: provider %s is not of type store.Provider"
)

// Interface of a persistence provider.
// Get must return ErrNotFound if the key does not exist.
type Interface interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Provider is the constructor a store backend registers.
type Provider func(opt interface{}) (Interface, error)

// Register a new store provider by name.
func Register(name string, provider Provider) error {
	return registry.Set(registryPrefix+name, provider)
}

// New creates the registered store provider with the given options.
func New(provider string, options interface{}) (Interface, error) {
	fn, err := registry.Get(registryPrefix + provider)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	p, ok := fn.(Provider)
	if !ok {
		return nil, fmt.Errorf(ErrProvider, provider)
	}
	s, err := p(options)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return s, nil
}

// GridKey returns the key of a grid aspect.
func GridKey(gridID string, aspect string) string {
	return "grid_" + gridID + "_" + aspect
}

// SearchKey returns the key of the saved searches of a grid.
func SearchKey(gridID string) string {
	return "search_" + gridID
}

// LoadJSON decodes the value of key into v.
// It reports false if the key does not exist, the store failed or the value is corrupt.
// Failures other than a missing key are logged as warning.
func LoadJSON(s Interface, log logger.Manager, key string, v interface{}) bool {
	if s == nil {
		return false
	}
	b, err := s.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			warn(log, key, err)
		}
		return false
	}
	if err = json.Unmarshal(b, v); err != nil {
		warn(log, key, err)
		return false
	}
	return true
}

// SaveJSON encodes v and stores it under key.
// Failures are logged as warning and otherwise ignored.
func SaveJSON(s Interface, log logger.Manager, key string, v interface{}) {
	if s == nil {
		return
	}
	b, err := json.Marshal(v)
	if err == nil {
		err = s.Set(key, b)
	}
	if err != nil {
		warn(log, key, err)
	}
}

// Delete removes the key. A missing key is not a failure.
func Delete(s Interface, log logger.Manager, key string) {
	if s == nil {
		return
	}
	if err := s.Remove(key); err != nil && !errors.Is(err, ErrNotFound) {
		warn(log, key, err)
	}
}

func warn(log logger.Manager, key string, err error) {
	if log != nil {
		log.WithFields(logger.Fields{"key": key}).Warning(err.Error())
	}
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pudge implements a file based store.Interface and registers it as store.PUDGE.
package pudge

import (
	"errors"
	"fmt"
	"log"

	"github.com/patrickascher/datagrid/store"
	"github.com/recoilme/pudge"
)

// init registers the pudge provider.
func init() {
	if err := store.Register(store.PUDGE, New); err != nil {
		log.Fatal(err)
	}
}

// Error messages.
var (
	ErrOptions = errors.New("pudge: options with a file are mandatory")
)

// Options for the pudge provider.
type Options struct {
	// File of the database.
	File string
	// SyncInterval in seconds, 0 writes synchronous.
	SyncInterval int
}

// New opens the pudge database of the given options.
func New(opt interface{}) (store.Interface, error) {
	o, ok := opt.(Options)
	if !ok || o.File == "" {
		return nil, ErrOptions
	}
	db, err := pudge.Open(o.File, &pudge.Config{SyncInterval: o.SyncInterval})
	if err != nil {
		return nil, fmt.Errorf("pudge: %w", err)
	}
	return &provider{db: db}, nil
}

type provider struct {
	db *pudge.Db
}

// Get returns the value of key or store.ErrNotFound.
func (p *provider) Get(key string) ([]byte, error) {
	var b []byte
	if err := p.db.Get(key, &b); err != nil {
		if errors.Is(err, pudge.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, key)
		}
		return nil, fmt.Errorf("pudge: %w", err)
	}
	return b, nil
}

func (p *provider) Set(key string, value []byte) error {
	if err := p.db.Set(key, value); err != nil {
		return fmt.Errorf("pudge: %w", err)
	}
	return nil
}

func (p *provider) Remove(key string) error {
	if err := p.db.Delete(key); err != nil {
		if errors.Is(err, pudge.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", store.ErrNotFound, key)
		}
		return fmt.Errorf("pudge: %w", err)
	}
	return nil
}

// Close flushes and closes the database file.
func (p *provider) Close() error {
	return p.db.Close()
}

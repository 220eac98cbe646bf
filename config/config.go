// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config provides a config manager for any type that implements the config.Interface.
// It will load the parsed values into a configuration struct.
//
// The Application struct describes the configuration of a grid backend (grid defaults, store, logging,
// option loading and server). Every provider has its own options, please see the specific provider for more details.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/patrickascher/datagrid/registry"
	"github.com/peterhellberg/duration"
)

// all pre-defined providers.
const (
	VIPER = "config_viper"
)

// Error messages
var (
	ErrInterface = errors.New("config: the type does not implement config.Interface")
	ErrPointer   = errors.New("config: the config argument must be a ptr")
)

// Interface for the config provider.
type Interface interface {
	Parse(config interface{}, options interface{}) error
}

// Load a configuration by provider and options.
// The cfg must be a ptr to the configuration struct.
// Error will return if the cfg is no ptr, the provider is unknown or any parsing errors.
func Load(provider string, cfg interface{}, options interface{}) error {
	if reflect.ValueOf(cfg).Kind() != reflect.Ptr {
		return ErrPointer
	}

	instance, err := registry.Get(provider)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	p, ok := instance.(Interface)
	if !ok {
		return ErrInterface
	}

	return p.Parse(cfg, options)
}

// Application configuration of a grid backend.
type Application struct {
	Server  Server
	Grid    Grid
	Store   Store
	Log     Log
	Options Options
}

// Server configuration.
type Server struct {
	Addr           string
	AllowedOrigins []string
}

// Grid defaults which are used if a grid does not define them.
type Grid struct {
	DefaultRowsPerPage int
	AllowedRowsPerPage []int
	// Locale of the string collation of local sources.
	Locale string
}

// Store configuration of the persistence provider.
type Store struct {
	Provider string
	Path     string
}

// Log configuration.
type Log struct {
	Level    string
	File     string
	JSON     bool
	MaxSize  int
	MaxFiles int
}

// Options configuration for remote option lists.
type Options struct {
	// CacheTTL as ISO-8601 duration (e.g. "PT90M", "P1D") or go duration ("90m").
	// Empty means no expiration.
	CacheTTL string
	// RatePerSecond limits the outgoing option requests. 0 disables the limit.
	RatePerSecond float64
}

// TTL parses the CacheTTL. An empty string returns 0.
func (o Options) TTL() (time.Duration, error) {
	if o.CacheTTL == "" {
		return 0, nil
	}
	if !strings.HasPrefix(strings.ToUpper(o.CacheTTL), "P") {
		d, err := time.ParseDuration(o.CacheTTL)
		if err != nil {
			return 0, fmt.Errorf("config: %w", err)
		}
		return d, nil
	}
	d, err := duration.Parse(strings.ToUpper(o.CacheTTL))
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return d, nil
}

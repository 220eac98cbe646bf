// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/patrickascher/datagrid/grid/options"
	"github.com/patrickascher/datagrid/logger"
	"github.com/patrickascher/datagrid/logger/logrus"
)

// Config of a grid.
type Config struct {
	// ID is the key namespace of the persisted state. It is set by New.
	ID string
	// IDField is the configured row identifier, used after recid.
	IDField string
	// DefaultRowsPerPage is the page size used as fallback.
	DefaultRowsPerPage int
	// AllowedRowsPerPage, -1 disables the pagination.
	AllowedRowsPerPage []int
	// SearchField restricts the free text search to one field path.
	SearchField string
	// MultiSort is accepted for compatibility, only one sort key is active.
	MultiSort bool
	// Joins are the selectable join options.
	Joins []JoinOption
	// OptionCache loads the remote options of the columns.
	OptionCache *options.Cache
	// Logger of the grid, default is a logrus logger with level WARNING.
	Logger logger.Manager
}

// defaultConfig for the grid with mandatory settings.
func defaultConfig(id string) Config {
	log := logger.New(logrus.New())
	log.SetLogLevel(logger.WARNING)

	return Config{
		ID:                 id,
		DefaultRowsPerPage: 15,
		AllowedRowsPerPage: []int{-1, 5, 10, 15, 25, 50},
		Logger:             log,
	}
}

// allowedLimit reports whether the limit is configured.
func (c Config) allowedLimit(limit int) bool {
	for _, l := range c.AllowedRowsPerPage {
		if l == limit || (l <= 0 && limit <= 0) {
			return true
		}
	}
	return false
}

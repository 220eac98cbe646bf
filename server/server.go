// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package server is a configurable webserver which serves grid pages and column options.
//
// POST /api/grids/:grid fetches a page of a registered dataset. The body is a grid.WireRequest,
// the response a grid.Response.
// GET /api/grids/:grid/columns returns the resolved columns of the grid with its persisted state.
// GET /api/options/:field returns the select options of the field as {"records": [...]}.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/patrickascher/datagrid/config"
	"github.com/patrickascher/datagrid/grid"
	"github.com/patrickascher/datagrid/grid/options"
	"github.com/patrickascher/datagrid/logger"
	"github.com/patrickascher/datagrid/store"
)

// Error messages.
var (
	ErrGridNotExist = "server: grid %s is not registered"
	ErrGridExists   = "server: grid %s is already registered"
	ErrOptionsFunc  = errors.New("server: options func is mandatory")
)

// Dataset is a grid which is served by the server.
type Dataset struct {
	Columns []grid.Column
	Source  grid.Fetcher
	Joins   []grid.JoinOption
}

// OptionsFunc returns the options of a field for the query values of the request.
type OptionsFunc func(query map[string]string) []options.Item

// Server struct.
type Server struct {
	server http.Server
	cfg    config.Application

	log     logger.Manager
	store   store.Interface
	options *options.Cache
	handler http.Handler

	mutex    sync.RWMutex
	datasets map[string]Dataset
	optionFn map[string]OptionsFunc
}

// New creates a server with the given configuration.
func New(cfg config.Application) (*Server, error) {
	s := &Server{cfg: cfg, datasets: map[string]Dataset{}, optionFn: map[string]OptionsFunc{}}
	if err := s.initHooks(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddGrid registers a dataset under the grid id.
func (s *Server) AddGrid(id string, d Dataset) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.datasets[id]; ok {
		return fmt.Errorf(ErrGridExists, id)
	}
	s.datasets[id] = d
	return nil
}

// AddOptions registers the options of a field.
func (s *Server) AddOptions(field string, fn OptionsFunc) error {
	if fn == nil {
		return ErrOptionsFunc
	}
	s.mutex.Lock()
	s.optionFn[field] = fn
	s.mutex.Unlock()
	return nil
}

// Grid creates a grid of the registered dataset.
// The grid state is restored from the server store and remote options are loaded over the server option cache.
func (s *Server) Grid(id string) (*grid.Grid, error) {
	s.mutex.RLock()
	d, ok := s.datasets[id]
	s.mutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf(ErrGridNotExist, id)
	}
	return grid.New(id, d.Columns, d.Source, s.store, grid.Config{
		DefaultRowsPerPage: s.cfg.Grid.DefaultRowsPerPage,
		AllowedRowsPerPage: s.cfg.Grid.AllowedRowsPerPage,
		Joins:              d.Joins,
		OptionCache:        s.options,
		Logger:             s.log,
	})
}

// Handler returns the http.Handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Logger of the server.
func (s *Server) Logger() logger.Manager {
	return s.log
}

// Store of the server.
func (s *Server) Store() store.Interface {
	return s.store
}

// Start the webserver.
func (s *Server) Start() error {
	s.server.Addr = s.cfg.Server.Addr
	s.server.Handler = s.handler
	s.log.Info("server: listening on " + s.cfg.Server.Addr)
	return s.server.ListenAndServe()
}

// Stop the webserver.
func (s *Server) Stop() error {
	return s.server.Close()
}

func (s *Server) dataset(id string) (Dataset, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	d, ok := s.datasets[id]
	return d, ok
}

func (s *Server) optionsFunc(field string) (OptionsFunc, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	fn, ok := s.optionFn[field]
	return fn, ok
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/patrickascher/datagrid/cache"
	"github.com/patrickascher/datagrid/cache/memory"
	"github.com/patrickascher/datagrid/grid/options"
	"github.com/patrickascher/datagrid/logger"
	"github.com/patrickascher/datagrid/logger/logrus"
	"github.com/patrickascher/datagrid/store"
	"github.com/patrickascher/datagrid/store/pudge"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// Error messages.
var (
	ErrConfig = "server: config %s is mandatory"
)

// initHooks will initialize all pre-defined server hooks.
func (s *Server) initHooks() error {
	if err := s.logHook(); err != nil {
		return err
	}
	if err := s.storeHook(); err != nil {
		return err
	}
	if err := s.optionHook(); err != nil {
		return err
	}
	return s.routerHook()
}

// logHook creates the logrus logger with the configured level.
func (s *Server) logHook() error {
	lvl := logger.INFO
	if s.cfg.Log.Level != "" {
		var err error
		if lvl, err = logger.ParseLevel(s.cfg.Log.Level); err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}
	s.log = logger.New(logrus.New(logrus.Options{
		File:       s.cfg.Log.File,
		JSON:       s.cfg.Log.JSON,
		MaxSize:    s.cfg.Log.MaxSize,
		MaxBackups: s.cfg.Log.MaxFiles,
	}))
	s.log.SetLogLevel(lvl)
	return nil
}

// storeHook opens the configured store. Pudge needs a path, memory is the default.
func (s *Server) storeHook() error {
	var err error
	switch strings.ToLower(s.cfg.Store.Provider) {
	case store.PUDGE:
		if s.cfg.Store.Path == "" {
			return fmt.Errorf(ErrConfig, "store:path")
		}
		s.store, err = store.New(store.PUDGE, pudge.Options{File: s.cfg.Store.Path})
	case "", store.MEMORY:
		s.store, err = store.New(store.MEMORY, nil)
	default:
		s.store, err = store.New(s.cfg.Store.Provider, nil)
	}
	return err
}

// optionHook creates the option cache which loads the remote options from the server itself.
func (s *Server) optionHook() error {
	ttl, err := s.cfg.Options.TTL()
	if err != nil {
		return err
	}
	mem, err := cache.New(cache.MEMORY, memory.Options{})
	if err != nil {
		return err
	}

	loader := &options.HTTPLoader{BaseURL: "http://" + localAddr(s.cfg.Server.Addr)}
	if s.cfg.Options.RatePerSecond > 0 {
		loader.Limiter = rate.NewLimiter(rate.Limit(s.cfg.Options.RatePerSecond), 1)
	}
	s.options = options.NewCache(loader, mem, s.log, ttl)
	return nil
}

// routerHook adds the routes, the request logger and the CORS handler.
func (s *Server) routerHook() error {
	r := httprouter.New()
	r.RedirectTrailingSlash = true
	r.HandleMethodNotAllowed = true

	mw := NewMiddleware(NewLogger(s.log).MW)
	r.Handler(http.MethodPost, "/api/grids/:grid", mw.Handle(s.fetchHandler))
	r.Handler(http.MethodGet, "/api/grids/:grid/columns", mw.Handle(s.columnsHandler))
	r.Handler(http.MethodGet, "/api/options/:field", mw.Handle(s.optionsHandler))

	origins := s.cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
	return nil
}

// localAddr converts a listen address like ":8080" into a dialable address.
func localAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

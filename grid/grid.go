// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package grid is a configuration driven tabular data engine.
//
// It provides type aware filtering and free text search, single key sorting, pagination,
// join driven column visibility and a data source abstraction for local rows and remote
// paged endpoints. The state of a grid (joins, visible columns, search settings,
// showDeleted and saved searches) is persisted in a store.Interface under the grid id.
package grid

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/patrickascher/datagrid/grid/options"
	"github.com/patrickascher/datagrid/logger"
	"github.com/patrickascher/datagrid/slicer"
	"github.com/patrickascher/datagrid/store"
	"github.com/patrickascher/datagrid/structer"
)

// Error messages.
var (
	ErrID    = "grid: an id is mandatory"
	errWrap  = "grid: %w"
	ErrField = "grid: field %s does not exist"
)

// Grid holds the state of one grid instance.
// All operations are safe for concurrent use. Every operation which triggers a fetch
// issues exactly one fetch, only the latest issued fetch is applied to the records.
type Grid struct {
	mutex sync.Mutex

	config   Config
	log      logger.Manager
	declared []Column
	columns  []Column
	adapter  *Adapter
	store    store.Interface
	joins    *JoinManager
	searcher Searcher
	selected *Selection

	page              int
	limit             int
	sort              *Sort
	filter            *AdvancedFilter
	showDeleted       bool
	visibleColumns    []string
	searchField       string
	searchableColumns []string
	overrides         map[string]bool

	response Response
}

// New creates a grid and restores its persisted state.
// No fetch is issued, call Reload for the first page.
func New(id string, columns []Column, src Fetcher, st store.Interface, conf ...Config) (*Grid, error) {
	if id == "" {
		return nil, errors.New(ErrID)
	}

	cfg := defaultConfig(id)
	if len(conf) > 0 {
		if err := structer.Merge(&cfg, conf[0], structer.Override); err != nil {
			return nil, fmt.Errorf(errWrap, err)
		}
		cfg.ID = id
	}

	declared, err := prepareColumns(columns)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		config:      cfg,
		log:         cfg.Logger.WithFields(logger.Fields{"grid": id}),
		declared:    declared,
		store:       st,
		page:        1,
		limit:       cfg.DefaultRowsPerPage,
		searchField: cfg.SearchField,
		overrides:   map[string]bool{},
		response:    EmptyResponse(),
		selected:    NewSelection(cfg.IDField),
	}
	g.adapter = NewAdapter(src, g.log)
	g.joins = NewJoinManager(id, cfg.Joins, st, g.log)
	g.restore()
	g.columns = g.resolve()

	return g, nil
}

// restore loads the persisted state. Missing or corrupt values keep the defaults.
func (g *Grid) restore() {
	g.joins.Load()
	g.load(store.VisibleColumns, &g.visibleColumns)
	g.load(store.SearchFields, &g.searchField)
	g.load(store.SearchableColumns, &g.searchableColumns)
	g.load(store.ShowDeleted, &g.showDeleted)
	g.load(store.Overrides, &g.overrides)
	if g.overrides == nil {
		g.overrides = map[string]bool{}
	}
}

func (g *Grid) load(aspect string, v interface{}) bool {
	return store.LoadJSON(g.store, g.log, store.GridKey(g.config.ID, aspect), v)
}

func (g *Grid) save(aspect string, v interface{}) {
	store.SaveJSON(g.store, g.log, store.GridKey(g.config.ID, aspect), v)
}

// resolve computes the column visibility of the current state.
func (g *Grid) resolve() []Column {
	cols := ResolveColumns(g.declared, g.joins.Selected(), g.overrides, g.visibleColumns)
	if g.searchableColumns != nil {
		for i := range cols {
			_, cols[i].Searchable = slicer.StringExists(g.searchableColumns, cols[i].Field)
		}
	}
	return cols
}

// ID of the grid.
func (g *Grid) ID() string {
	return g.config.ID
}

// Config returns a copy of the configuration.
func (g *Grid) Config() Config {
	return g.config
}

// Columns returns the resolved columns.
func (g *Grid) Columns() []Column {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return copyColumns(g.columns)
}

// Column returns the resolved column of the field.
func (g *Grid) Column(field string) (Column, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	for _, c := range g.columns {
		if c.Field == field {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf(ErrField, field)
}

// Records returns the rows of the last applied response.
func (g *Grid) Records() []Row {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return copyRows(g.response.Records)
}

// Response returns the last applied response.
func (g *Grid) Response() Response {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	r := g.response
	r.Records = copyRows(r.Records)
	return r
}

// Pagination of the last applied response.
func (g *Grid) Pagination() Pagination {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.pagination()
}

func (g *Grid) pagination() Pagination {
	return NewPagination(g.response.Total, g.limit, g.page)
}

// Params returns the params of the next fetch.
func (g *Grid) Params() Params {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.params()
}

func (g *Grid) params() Params {
	p := Params{
		Page:        g.page,
		Limit:       g.limit,
		Search:      g.filter.Copy(),
		Join:        g.joins.Selected(),
		ShowDeleted: g.showDeleted,
	}
	if p.Search != nil {
		p.SearchLogic = p.Search.Logic
	}
	if g.sort != nil {
		s := *g.sort
		p.Sort = &s
	}
	for _, c := range g.columns {
		if !c.Hidden {
			p.Columns = append(p.Columns, c.Field)
		}
	}
	return p
}

// Reload fetches the current page.
func (g *Grid) Reload(ctx context.Context) Result {
	g.mutex.Lock()
	p := g.params()
	token := g.adapter.Next()
	g.mutex.Unlock()

	r := g.adapter.FetchToken(ctx, token, p)

	g.mutex.Lock()
	if g.adapter.IsLatest(r.Token) {
		g.response = r.Response
		r.Applied = true
	} else {
		r.Applied = false
	}
	g.mutex.Unlock()
	return r
}

// Options returns the select options of the column.
// Static options have precedence, remote options are loaded over the configured option cache.
func (g *Grid) Options(ctx context.Context, field string, form options.FormState) []options.Item {
	c, err := g.Column(field)
	if err != nil {
		return nil
	}
	if len(c.Options) > 0 || c.Load == nil || g.config.OptionCache == nil {
		return append([]options.Item(nil), c.Options...)
	}
	return g.config.OptionCache.Load(ctx, field, c.Load, form)
}

// Selection of the grid rows.
func (g *Grid) Selection() *Selection {
	return g.selected
}

// RowID returns the identity of the row.
func (g *Grid) RowID(r Row) string {
	return RowID(r, g.config.IDField)
}

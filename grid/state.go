// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"context"

	"github.com/patrickascher/datagrid/logger"
	"github.com/patrickascher/datagrid/slicer"
	"github.com/patrickascher/datagrid/store"
)

// Search activates a free text search on the visible searchable columns and fetches the first page.
// An unchanged term is a no-op and reports false.
func (g *Grid) Search(ctx context.Context, term string) (Result, bool) {
	if !g.searcher.Changed(term) {
		return Result{}, false
	}
	g.mutex.Lock()
	var cols []Column
	for _, c := range g.columns {
		if !c.Hidden {
			cols = append(cols, c)
		}
	}
	g.filter = CompileSearch(term, cols, g.searchField)
	g.page = 1
	g.mutex.Unlock()
	return g.Reload(ctx), true
}

// SetFilter activates an advanced filter and fetches the first page.
// The condition types are taken from the columns and invalid operators are corrected.
// An active free text search is replaced.
func (g *Grid) SetFilter(ctx context.Context, f AdvancedFilter) Result {
	g.searcher.Reset()
	g.mutex.Lock()
	if f.Logic != OR {
		f.Logic = AND
	}
	conditions := make([]FilterCondition, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		if col, ok := columnOf(g.declared, c.Field); ok && c.Type == "" {
			c.Type = col.Type
		}
		n := NormalizeCondition(c)
		if n.Operator != c.Operator {
			g.log.WithFields(logger.Fields{"field": c.Field, "operator": c.Operator}).Debug("grid: operator corrected to " + string(n.Operator))
		}
		conditions = append(conditions, n)
	}
	f.Conditions = conditions
	g.filter = nil
	if !f.Empty() {
		g.filter = &f
	}
	g.page = 1
	g.mutex.Unlock()
	return g.Reload(ctx)
}

// ClearFilter removes the filter or search and fetches the first page.
func (g *Grid) ClearFilter(ctx context.Context) Result {
	g.searcher.Reset()
	g.mutex.Lock()
	g.filter = nil
	g.page = 1
	g.mutex.Unlock()
	return g.Reload(ctx)
}

// Filter returns the active filter or nil.
func (g *Grid) Filter() *AdvancedFilter {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.filter.Copy()
}

// SortBy toggles the sort of the field and fetches the current page.
func (g *Grid) SortBy(ctx context.Context, field string) Result {
	g.mutex.Lock()
	s := g.sort.Toggle(field)
	g.sort = &s
	g.mutex.Unlock()
	return g.Reload(ctx)
}

// Sort returns the active sort or nil.
func (g *Grid) Sort() *Sort {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if g.sort == nil {
		return nil
	}
	s := *g.sort
	return &s
}

// GoToPage fetches the page. A page which does not exist is a no-op and reports false.
func (g *Grid) GoToPage(ctx context.Context, page int) (Result, bool) {
	g.mutex.Lock()
	if !g.pagination().CanGoTo(page) {
		g.mutex.Unlock()
		return Result{}, false
	}
	g.page = page
	g.mutex.Unlock()
	return g.Reload(ctx), true
}

// NextPage fetches the next page if it exists.
func (g *Grid) NextPage(ctx context.Context) (Result, bool) {
	next := g.Pagination().Next
	if next == 0 {
		return Result{}, false
	}
	return g.GoToPage(ctx, next)
}

// PrevPage fetches the previous page if it exists.
func (g *Grid) PrevPage(ctx context.Context) (Result, bool) {
	prev := g.Pagination().Prev
	if prev == 0 {
		return Result{}, false
	}
	return g.GoToPage(ctx, prev)
}

// PageInput fetches a manually entered page.
// Invalid input keeps the current page and reports false.
func (g *Grid) PageInput(ctx context.Context, input string) (Result, bool) {
	p := g.Pagination()
	page := p.PageInput(input)
	if page == p.CurrentPage {
		return Result{}, false
	}
	return g.GoToPage(ctx, page)
}

// Page returns the current page.
func (g *Grid) Page() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.page
}

// SetLimit changes the rows per page and fetches the first page.
// A limit which is not allowed is a no-op and reports false.
func (g *Grid) SetLimit(ctx context.Context, limit int) (Result, bool) {
	if !g.config.allowedLimit(limit) {
		return Result{}, false
	}
	g.mutex.Lock()
	g.limit = limit
	g.page = 1
	g.mutex.Unlock()
	return g.Reload(ctx), true
}

// Limit returns the rows per page, <= 0 is unlimited.
func (g *Grid) Limit() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.limit
}

// ToggleJoin checks or unchecks a join, persists the joins and fetches the current page.
// The fields whose visibility changed are returned.
func (g *Grid) ToggleJoin(ctx context.Context, key string, checked bool) (Result, []string) {
	g.joins.Toggle(key, checked)
	g.joins.Save()
	changed := g.refresh()
	return g.Reload(ctx), changed
}

// Joins returns the selected joins.
func (g *Grid) Joins() Joins {
	return g.joins.Selected()
}

// JoinOptions returns the configured join options.
func (g *Grid) JoinOptions() []JoinOption {
	return g.joins.Options()
}

// ToggleShowDeleted flips and persists the showDeleted flag and fetches the current page.
func (g *Grid) ToggleShowDeleted(ctx context.Context) Result {
	g.mutex.Lock()
	g.showDeleted = !g.showDeleted
	g.save(store.ShowDeleted, g.showDeleted)
	g.mutex.Unlock()
	return g.Reload(ctx)
}

// ShowDeleted reports whether deleted rows are requested.
func (g *Grid) ShowDeleted() bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.showDeleted
}

// SetVisibleColumns persists the allow list of visible columns.
// An empty list shows all columns. The fields whose visibility changed are returned.
func (g *Grid) SetVisibleColumns(fields []string) []string {
	g.mutex.Lock()
	g.visibleColumns = slicer.StringUnique(fields)
	if len(g.visibleColumns) == 0 {
		g.visibleColumns = nil
	}
	g.save(store.VisibleColumns, g.visibleColumns)
	g.mutex.Unlock()
	return g.refresh()
}

// SetColumnOverride persists an explicit visibility of the field.
// The fields whose visibility changed are returned.
func (g *Grid) SetColumnOverride(field string, visible bool) []string {
	g.mutex.Lock()
	g.overrides[field] = visible
	g.save(store.Overrides, g.overrides)
	g.mutex.Unlock()
	return g.refresh()
}

// ClearColumnOverride removes the explicit visibility of the field.
func (g *Grid) ClearColumnOverride(field string) []string {
	g.mutex.Lock()
	delete(g.overrides, field)
	g.save(store.Overrides, g.overrides)
	g.mutex.Unlock()
	return g.refresh()
}

// SetSearchableColumns persists the fields which take part in the free text search.
// Nil restores the declared searchable flags.
func (g *Grid) SetSearchableColumns(fields []string) {
	g.mutex.Lock()
	g.searchableColumns = fields
	g.save(store.SearchableColumns, fields)
	g.mutex.Unlock()
	g.searcher.Reset()
	g.refresh()
}

// SetSearchField persists the single search field. An empty field searches all searchable columns.
func (g *Grid) SetSearchField(field string) {
	g.mutex.Lock()
	g.searchField = field
	g.save(store.SearchFields, field)
	g.mutex.Unlock()
	g.searcher.Reset()
}

// SearchField returns the single search field.
func (g *Grid) SearchField() string {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.searchField
}

// refresh resolves the columns and returns the fields whose visibility changed.
func (g *Grid) refresh() []string {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	cols := g.resolve()
	changed := ChangedColumns(g.columns, cols)
	g.columns = cols
	return changed
}

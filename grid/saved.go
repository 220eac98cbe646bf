// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"context"
	"strings"

	"github.com/patrickascher/datagrid/store"
	"github.com/segmentio/ksuid"
)

// SavedSearch is a named filter of a grid.
type SavedSearch struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Filter AdvancedFilter `json:"filter"`
}

// SavedSearches returns the persisted searches of the grid.
func (g *Grid) SavedSearches() []SavedSearch {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.savedSearches()
}

func (g *Grid) savedSearches() []SavedSearch {
	var s []SavedSearch
	store.LoadJSON(g.store, g.log, store.SearchKey(g.config.ID), &s)
	return s
}

// SaveSearch persists the active filter under the name.
// It reports false if no filter is active or the name is empty.
func (g *Grid) SaveSearch(name string) (SavedSearch, bool) {
	name = strings.TrimSpace(name)
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if name == "" || g.filter.Empty() {
		return SavedSearch{}, false
	}
	s := SavedSearch{ID: ksuid.New().String(), Name: name, Filter: *g.filter.Copy()}
	store.SaveJSON(g.store, g.log, store.SearchKey(g.config.ID), append(g.savedSearches(), s))
	return s, true
}

// ApplySearch activates the saved search and fetches the first page.
// An unknown id is a no-op and reports false.
func (g *Grid) ApplySearch(ctx context.Context, id string) (Result, bool) {
	for _, s := range g.SavedSearches() {
		if s.ID == id {
			return g.SetFilter(ctx, s.Filter), true
		}
	}
	return Result{}, false
}

// DeleteSearch removes the saved search. The key is removed with the last search.
func (g *Grid) DeleteSearch(id string) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	searches := g.savedSearches()
	for i, s := range searches {
		if s.ID != id {
			continue
		}
		searches = append(searches[:i], searches[i+1:]...)
		if len(searches) == 0 {
			store.Delete(g.store, g.log, store.SearchKey(g.config.ID))
		} else {
			store.SaveJSON(g.store, g.log, store.SearchKey(g.config.ID), searches)
		}
		return true
	}
	return false
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"sync"

	"github.com/patrickascher/datagrid/logger"
	"github.com/patrickascher/datagrid/store"
)

// JoinOption is a selectable join. Options with a parent are nested under the parent join.
type JoinOption struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Nested  bool   `json:"nested,omitempty"`
	Parent  string `json:"parent,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// Joins are the selected joins. A value is true or a map of nested keys to true.
type Joins map[string]interface{}

// Copy returns a deep copy.
func (j Joins) Copy() Joins {
	rv := make(Joins, len(j))
	for k, v := range j {
		if m, ok := v.(map[string]interface{}); ok {
			c := make(map[string]interface{}, len(m))
			for nk, nv := range m {
				c[nk] = nv
			}
			rv[k] = c
			continue
		}
		rv[k] = v
	}
	return rv
}

// JoinManager maintains the selected joins of a grid.
type JoinManager struct {
	mutex    sync.Mutex
	gridID   string
	options  []JoinOption
	selected Joins
	store    store.Interface
	log      logger.Manager
}

// NewJoinManager creates a manager without selected joins.
func NewJoinManager(gridID string, opts []JoinOption, st store.Interface, log logger.Manager) *JoinManager {
	return &JoinManager{
		gridID:   gridID,
		options:  append([]JoinOption(nil), opts...),
		selected: Joins{},
		store:    st,
		log:      log,
	}
}

// Options returns the join options.
func (m *JoinManager) Options() []JoinOption {
	return append([]JoinOption(nil), m.options...)
}

// Selected returns a copy of the selected joins.
func (m *JoinManager) Selected() Joins {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.selected.Copy()
}

// Toggle checks or unchecks a join.
//
// A nested option is set inside its parent map, a parent which is selected as true is
// converted to a map. Removing the last nested key removes the parent.
// Checking a top level option keeps its already selected nested options.
func (m *JoinManager) Toggle(key string, checked bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.toggle(key, checked)
}

func (m *JoinManager) toggle(key string, checked bool) {
	opt, _ := m.option(key)

	if opt.Parent != "" {
		parent, _ := m.selected[opt.Parent].(map[string]interface{})
		if checked {
			if parent == nil {
				parent = map[string]interface{}{}
			}
			parent[key] = true
			m.selected[opt.Parent] = parent
			delete(m.selected, key)
			return
		}
		delete(m.selected, key)
		if parent != nil {
			delete(parent, key)
			if len(parent) == 0 {
				delete(m.selected, opt.Parent)
			}
		}
		return
	}

	if !checked {
		delete(m.selected, key)
		return
	}

	seed := map[string]interface{}{}
	if existing, ok := m.selected[key].(map[string]interface{}); ok {
		for k, v := range existing {
			seed[k] = v
		}
	}
	for _, o := range m.options {
		if o.Parent != key {
			continue
		}
		if b, ok := m.selected[o.Key].(bool); ok && b {
			seed[o.Key] = true
			delete(m.selected, o.Key)
		}
	}
	if len(seed) > 0 {
		m.selected[key] = seed
		return
	}
	m.selected[key] = true
}

// Cleanup moves options with a parent from the top level under their parent.
func (m *JoinManager) Cleanup() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.cleanup()
}

func (m *JoinManager) cleanup() {
	for _, o := range m.options {
		if o.Parent == "" {
			continue
		}
		if b, ok := m.selected[o.Key].(bool); !ok || !b {
			continue
		}
		delete(m.selected, o.Key)
		parent, _ := m.selected[o.Parent].(map[string]interface{})
		if parent == nil {
			parent = map[string]interface{}{}
		}
		parent[o.Key] = true
		m.selected[o.Parent] = parent
	}
}

// LoadDefaults selects the default options, parents first.
func (m *JoinManager) LoadDefaults() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.selected = Joins{}
	for _, o := range m.options {
		if o.Default && o.Parent == "" {
			m.toggle(o.Key, true)
		}
	}
	for _, o := range m.options {
		if o.Default && o.Parent != "" {
			m.toggle(o.Key, true)
		}
	}
	m.cleanup()
}

// Load restores the persisted joins or selects the defaults.
func (m *JoinManager) Load() {
	var j Joins
	if !store.LoadJSON(m.store, m.log, store.GridKey(m.gridID, store.Joins), &j) || j == nil {
		m.LoadDefaults()
		return
	}
	m.mutex.Lock()
	m.selected = j
	m.cleanup()
	m.mutex.Unlock()
}

// Save persists the selected joins.
func (m *JoinManager) Save() {
	store.SaveJSON(m.store, m.log, store.GridKey(m.gridID, store.Joins), m.Selected())
}

func (m *JoinManager) option(key string) (JoinOption, bool) {
	for _, o := range m.options {
		if o.Key == key {
			return o, true
		}
	}
	return JoinOption{Key: key}, false
}

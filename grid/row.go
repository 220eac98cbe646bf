// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Row is an open field map. Nested maps are addressed by a dotted path.
type Row map[string]interface{}

// Value returns the value of the dotted path or nil.
// A key which contains the full path has precedence over the nested lookup.
func (r Row) Value(path string) interface{} {
	if v, ok := r[path]; ok {
		return v
	}
	var cur interface{} = map[string]interface{}(r)
	for _, p := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]interface{}:
			cur = m[p]
		case Row:
			cur = m[p]
		default:
			return nil
		}
	}
	return cur
}

// RowID returns the identity of the row.
// The priority is recid, the configured id field, id, _id and at last the JSON encoded row.
func RowID(r Row, idField string) string {
	for _, k := range []string{"recid", idField, "id", "_id"} {
		if k == "" {
			continue
		}
		if v, ok := r[k]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	// map keys are encoded sorted.
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprint(map[string]interface{}(r))
	}
	return string(b)
}

// Selection is a set of row identities.
type Selection struct {
	mutex   sync.RWMutex
	idField string
	ids     map[string]struct{}
}

// NewSelection creates an empty selection which resolves identities with the id field.
func NewSelection(idField string) *Selection {
	return &Selection{idField: idField, ids: make(map[string]struct{})}
}

// Select adds the rows.
func (s *Selection) Select(rows ...Row) {
	s.mutex.Lock()
	for _, r := range rows {
		s.ids[RowID(r, s.idField)] = struct{}{}
	}
	s.mutex.Unlock()
}

// Deselect removes the rows.
func (s *Selection) Deselect(rows ...Row) {
	s.mutex.Lock()
	for _, r := range rows {
		delete(s.ids, RowID(r, s.idField))
	}
	s.mutex.Unlock()
}

// IsSelected reports whether the row is part of the selection.
func (s *Selection) IsSelected(r Row) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, ok := s.ids[RowID(r, s.idField)]
	return ok
}

// Len of the selection.
func (s *Selection) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.ids)
}

// Clear the selection.
func (s *Selection) Clear() {
	s.mutex.Lock()
	s.ids = make(map[string]struct{})
	s.mutex.Unlock()
}

func copyRows(rows []Row) []Row {
	rv := make([]Row, len(rows))
	copy(rv, rows)
	return rv
}

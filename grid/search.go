// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"strings"
	"sync"
)

// CompileSearch converts a free text term into an OR filter.
//
// A numeric term searches number and text columns, any other term searches text,
// list and enum columns. Number columns use equals, all others startsWith.
// List and enum conditions are text typed, they match the label of the search field.
// If searchField is set, only that field is searched.
// Only searchable columns are considered. An empty term returns nil.
func CompileSearch(term string, columns []Column, searchField string) *AdvancedFilter {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	_, numeric := parseNumber(term)

	f := &AdvancedFilter{Logic: OR}
	if searchField != "" {
		t := Text
		if c, ok := columnOf(columns, searchField); ok {
			t = c.Type
		}
		f.Conditions = append(f.Conditions, searchCondition(searchField, t, term, numeric))
		return f
	}

	for _, c := range columns {
		if !c.Searchable {
			continue
		}
		switch OperatorTypeOf(c.Type) {
		case NumberOperators:
			if !numeric {
				continue
			}
		case TextOperators:
		case ListOperators, EnumOperators:
			if numeric {
				continue
			}
		default:
			continue
		}
		f.Conditions = append(f.Conditions, searchCondition(c.SearchPath(), c.Type, term, numeric))
	}
	return f
}

func searchCondition(field string, t ColumnType, term string, numeric bool) FilterCondition {
	op := StartsWith
	if numeric && isNumberType(t) {
		op = Equals
	} else if !IsValidOperator(t, op) {
		t = Text
	}
	return FilterCondition{Field: field, Operator: op, Value: term, Type: t}
}

// Searcher remembers the last activated search term.
type Searcher struct {
	mutex sync.Mutex
	last  string
}

// Changed reports whether the trimmed term differs from the last activated term and remembers it.
func (s *Searcher) Changed(term string) bool {
	term = strings.TrimSpace(term)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if term == s.last {
		return false
	}
	s.last = term
	return true
}

// Term returns the last activated term.
func (s *Searcher) Term() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.last
}

// Reset forgets the last term.
func (s *Searcher) Reset() {
	s.mutex.Lock()
	s.last = ""
	s.mutex.Unlock()
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction of a sort.
type Direction string

// Directions.
const (
	ASC  Direction = "asc"
	DESC Direction = "desc"
)

// Sort is the single active sort key.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle returns the next sort for a click on field.
// The same field flips the direction, a new field starts ascending.
func (s *Sort) Toggle(field string) Sort {
	if s != nil && s.Field == field {
		if s.Direction == DESC {
			return Sort{Field: field, Direction: ASC}
		}
		return Sort{Field: field, Direction: DESC}
	}
	return Sort{Field: field, Direction: ASC}
}

// Comparator orders row values with the collation rules of a locale.
type Comparator struct {
	mutex    sync.Mutex
	collator *collate.Collator
}

// NewComparator creates a comparator for the locale.
// An unparsable locale falls back to English.
func NewComparator(locale string) *Comparator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Comparator{collator: collate.New(tag)}
}

// Compare returns a negative, zero or positive number.
// Nil values are placed after non nil values regardless of the direction.
// Strings are collated, other values are compared numerically and non numeric values are equal.
func (c *Comparator) Compare(a, b interface{}, dir Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	var rv int
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		c.mutex.Lock()
		rv = c.collator.CompareString(sa, sb)
		c.mutex.Unlock()
	} else {
		fa, okA := toFloat(a, Float)
		fb, okB := toFloat(b, Float)
		if okA && okB {
			switch {
			case fa < fb:
				rv = -1
			case fa > fb:
				rv = 1
			}
		}
	}

	if dir == DESC {
		return -rv
	}
	return rv
}

// SortRows returns a new stable sorted slice of the rows.
func (c *Comparator) SortRows(rows []Row, s Sort) []Row {
	rv := copyRows(rows)
	if s.Field == "" {
		return rv
	}
	sort.SliceStable(rv, func(i, j int) bool {
		return c.Compare(rv[i].Value(s.Field), rv[j].Value(s.Field), s.Direction) < 0
	})
	return rv
}

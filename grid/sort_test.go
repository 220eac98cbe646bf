// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid_test

import (
	"testing"

	"github.com/patrickascher/datagrid/grid"
	"github.com/stretchr/testify/assert"
)

// TestSort_Toggle tests the direction cycle of a sort.
func TestSort_Toggle(t *testing.T) {
	asserts := assert.New(t)

	var s *grid.Sort
	next := s.Toggle("Name")
	asserts.Equal(grid.Sort{Field: "Name", Direction: grid.ASC}, next)
	next = next.Toggle("Name")
	asserts.Equal(grid.Sort{Field: "Name", Direction: grid.DESC}, next)
	next = next.Toggle("Name")
	asserts.Equal(grid.Sort{Field: "Name", Direction: grid.ASC}, next)
	next = next.Toggle("Age")
	asserts.Equal(grid.Sort{Field: "Age", Direction: grid.ASC}, next)
}

// TestComparator_SortRows tests:
// - nil values are last in both directions.
// - strings are collated by the locale.
// - numbers are compared numerically.
// - the sort is stable and the input is not modified.
func TestComparator_SortRows(t *testing.T) {
	asserts := assert.New(t)
	c := grid.NewComparator("tr")

	rows := []grid.Row{{"Name": nil, "ID": 1}, {"Name": "Zoe", "ID": 2}, {"Name": "ayşe", "ID": 3}, {"Name": "Bob", "ID": 4}}
	asc := c.SortRows(rows, grid.Sort{Field: "Name", Direction: grid.ASC})
	asserts.Equal([]interface{}{"ayşe", "Bob", "Zoe", nil}, names(asc, "Name"))
	desc := c.SortRows(rows, grid.Sort{Field: "Name", Direction: grid.DESC})
	asserts.Equal([]interface{}{"Zoe", "Bob", "ayşe", nil}, names(desc, "Name"))
	asserts.Nil(rows[0]["Name"])

	nums := []grid.Row{{"Age": 10}, {"Age": 9.5}, {"Age": nil}, {"Age": "100"}}
	asserts.Equal([]interface{}{9.5, 10, "100", nil}, names(c.SortRows(nums, grid.Sort{Field: "Age", Direction: grid.ASC}), "Age"))
	asserts.Equal([]interface{}{"100", 10, 9.5, nil}, names(c.SortRows(nums, grid.Sort{Field: "Age", Direction: grid.DESC}), "Age"))

	stable := []grid.Row{{"G": 1, "ID": "a"}, {"G": 0, "ID": "b"}, {"G": 1, "ID": "c"}, {"G": 0, "ID": "d"}}
	asserts.Equal([]interface{}{"b", "d", "a", "c"}, names(c.SortRows(stable, grid.Sort{Field: "G", Direction: grid.ASC}), "ID"))

	asserts.Equal(rows, c.SortRows(rows, grid.Sort{}))
	asserts.Equal(0, c.Compare(nil, nil, grid.DESC))
	asserts.Equal(-1, c.Compare("x", nil, grid.DESC))

	// unknown locales fall back to english.
	asserts.NotNil(grid.NewComparator("!!"))
}

func names(rows []grid.Row, field string) []interface{} {
	rv := make([]interface{}, len(rows))
	for i, r := range rows {
		rv[i] = r[field]
	}
	return rv
}

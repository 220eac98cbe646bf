// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/patrickascher/datagrid/slicer"
)

// JoinActive reports whether the join table is active.
// A table is active if it is selected as true, selected as non empty nested map,
// or selected as true inside a parent map.
func JoinActive(joins Joins, table string) bool {
	if v, ok := joins[table]; ok {
		switch j := v.(type) {
		case bool:
			if j {
				return true
			}
		case map[string]interface{}:
			if len(j) > 0 {
				return true
			}
		}
	}
	for _, v := range joins {
		if m, ok := v.(map[string]interface{}); ok {
			if b, ok := m[table].(bool); ok && b {
				return true
			}
		}
	}
	return false
}

// ResolveColumns returns a new column slice with the computed Hidden flag.
//
// The precedence is: the runtime override map, the declared Visible value, the join
// activity of columns with join tables, the declared Hidden value.
// A non empty allow list hides every column which is not listed, it never shows a column.
func ResolveColumns(columns []Column, joins Joins, overrides map[string]bool, allow []string) []Column {
	rv := copyColumns(columns)
	for i := range rv {
		c := &rv[i]
		hidden := c.Hidden
		if len(c.JoinTable) > 0 {
			active := false
			for _, t := range c.JoinTable {
				if JoinActive(joins, t) {
					active = true
					break
				}
			}
			hidden = !active
		}
		if c.Visible.Valid {
			hidden = !c.Visible.Bool
		}
		if v, ok := overrides[c.Field]; ok {
			hidden = !v
		}
		if len(allow) > 0 {
			if _, ok := slicer.StringExists(allow, c.Field); !ok {
				hidden = true
			}
		}
		c.Hidden = hidden
	}
	return rv
}

// ChangedColumns returns the fields whose Hidden flag differs between old and next.
// Fields which only exist in one of the slices are ignored.
func ChangedColumns(old []Column, next []Column) []string {
	prev := make(map[string]bool, len(old))
	for _, c := range old {
		prev[c.Field] = c.Hidden
	}
	var rv []string
	for _, c := range next {
		if h, ok := prev[c.Field]; ok && h != c.Hidden {
			rv = append(rv, c.Field)
		}
	}
	return rv
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/patrickascher/datagrid/grid"
	"github.com/stretchr/testify/assert"
)

// TestEvaluate_greaterThan tests for all number types:
// - greaterThan is true iff the row value is greater than the condition value.
// - non numeric values on either side are false.
func TestEvaluate_greaterThan(t *testing.T) {
	asserts := assert.New(t)

	values := []interface{}{-3, 0, 2.5, "7", " 10 ", int64(42), float32(1.5)}
	for _, ct := range []grid.ColumnType{grid.Int, grid.Float, grid.Money, grid.Currency, grid.Percent} {
		for _, rv := range values {
			for _, cv := range values {
				a, _ := strconv.ParseFloat(trimNum(rv), 64)
				b, _ := strconv.ParseFloat(trimNum(cv), 64)
				c := grid.FilterCondition{Field: "n", Operator: grid.GreaterThan, Value: cv, Type: ct}
				asserts.Equal(a > b, grid.Evaluate(grid.Row{"n": rv}, c), "%v > %v", rv, cv)
			}
		}
		for _, bad := range []interface{}{nil, "", "abc", true} {
			asserts.False(grid.Evaluate(grid.Row{"n": bad}, grid.FilterCondition{Field: "n", Operator: grid.GreaterThan, Value: 1, Type: ct}))
			asserts.False(grid.Evaluate(grid.Row{"n": 5}, grid.FilterCondition{Field: "n", Operator: grid.GreaterThan, Value: bad, Type: ct}))
		}
	}
}

func trimNum(v interface{}) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return strings.TrimSpace(n)
	}
	return ""
}

// TestEvaluate tests:
// - case insensitive string operators.
// - numeric comparison operators and numeric equality.
// - between with strings, slices and malformed bounds.
// - in and notIn with comma lists, slices and multi value rows.
// - isEmpty and isNotEmpty.
// - date comparison.
// - nested paths.
func TestEvaluate(t *testing.T) {
	asserts := assert.New(t)
	row := grid.Row{
		"Name":       "Ayşe Yılmaz",
		"Age":        30,
		"Salary":     "2500.50",
		"Status":     "Active",
		"Tags":       []interface{}{"admin", "dev"},
		"Blank":      "   ",
		"Born":       "1990-05-01",
		"Color":      "#FF0000",
		"Hex":        "0A",
		"department": map[string]interface{}{"name": "Sales"},
	}

	tests := []struct {
		c        grid.FilterCondition
		expected bool
	}{
		{grid.FilterCondition{Field: "Name", Operator: grid.Equals, Value: "ayşe yılmaz"}, true},
		{grid.FilterCondition{Field: "Name", Operator: grid.NotEquals, Value: "ayşe yılmaz"}, false},
		{grid.FilterCondition{Field: "Name", Operator: grid.Contains, Value: "YIL"}, false},
		{grid.FilterCondition{Field: "Name", Operator: grid.Contains, Value: "Yıl"}, true},
		{grid.FilterCondition{Field: "Name", Operator: grid.NotContains, Value: "xyz"}, true},
		{grid.FilterCondition{Field: "Name", Operator: grid.StartsWith, Value: "AY"}, true},
		{grid.FilterCondition{Field: "Name", Operator: grid.EndsWith, Value: "MAZ"}, true},
		{grid.FilterCondition{Field: "Age", Operator: grid.Equals, Value: "30.0", Type: grid.Int}, true},
		{grid.FilterCondition{Field: "Age", Operator: grid.GreaterThanOrEqual, Value: 30, Type: grid.Int}, true},
		{grid.FilterCondition{Field: "Age", Operator: grid.LessThan, Value: 30, Type: grid.Int}, false},
		{grid.FilterCondition{Field: "Age", Operator: grid.LessThanOrEqual, Value: "30", Type: grid.Int}, true},
		{grid.FilterCondition{Field: "Salary", Operator: grid.Between, Value: "2000,3000", Type: grid.Money}, true},
		{grid.FilterCondition{Field: "Salary", Operator: grid.Between, Value: []interface{}{3000, 4000}, Type: grid.Money}, false},
		{grid.FilterCondition{Field: "Salary", Operator: grid.Between, Value: "2000,abc", Type: grid.Money}, false},
		{grid.FilterCondition{Field: "Salary", Operator: grid.Between, Value: "2000", Type: grid.Money}, false},
		{grid.FilterCondition{Field: "Status", Operator: grid.In, Value: "inactive, ACTIVE", Type: grid.Enum}, true},
		{grid.FilterCondition{Field: "Status", Operator: grid.NotIn, Value: "inactive, ACTIVE", Type: grid.Enum}, false},
		{grid.FilterCondition{Field: "Status", Operator: grid.NotIn, Value: []interface{}{"deleted"}, Type: grid.Enum}, true},
		{grid.FilterCondition{Field: "Status", Operator: grid.In, Value: "", Type: grid.Enum}, false},
		{grid.FilterCondition{Field: "Tags", Operator: grid.In, Value: "Dev", Type: grid.Enum}, true},
		{grid.FilterCondition{Field: "Blank", Operator: grid.IsEmpty}, true},
		{grid.FilterCondition{Field: "Missing", Operator: grid.IsEmpty}, true},
		{grid.FilterCondition{Field: "Name", Operator: grid.IsNotEmpty}, true},
		{grid.FilterCondition{Field: "Born", Operator: grid.GreaterThan, Value: "1989-12-31", Type: grid.Date}, true},
		{grid.FilterCondition{Field: "Born", Operator: grid.Between, Value: "1990-01-01,1990-12-31", Type: grid.Date}, true},
		{grid.FilterCondition{Field: "Born", Operator: grid.Equals, Value: "1990-05-01T00:00:00Z", Type: grid.Date}, true},
		{grid.FilterCondition{Field: "Color", Operator: grid.StartsWith, Value: "#ff", Type: grid.Color}, true},
		{grid.FilterCondition{Field: "Hex", Operator: grid.Between, Value: "00,FF", Type: grid.Hex}, false},
		{grid.FilterCondition{Field: "Hex", Operator: grid.Equals, Value: "0a", Type: grid.Hex}, true},
		{grid.FilterCondition{Field: "department.name", Operator: grid.Equals, Value: []interface{}{"sales"}, Type: grid.List}, true},
		// corrected operator: contains on a number column becomes equals.
		{grid.FilterCondition{Field: "Age", Operator: grid.Contains, Value: "3", Type: grid.Int}, false},
	}

	for _, test := range tests {
		asserts.Equal(test.expected, grid.Evaluate(row, test.c), "%s %s %v", test.c.Field, test.c.Operator, test.c.Value)
	}
}

// TestAdvancedFilter_Apply tests:
// - AND on empty conditions returns the input unchanged.
// - a nil filter returns the input unchanged.
// - AND and OR logic.
func TestAdvancedFilter_Apply(t *testing.T) {
	asserts := assert.New(t)
	rows := []grid.Row{
		{"Name": "Anna", "Age": 20},
		{"Name": "Bert", "Age": 40},
		{"Name": "Carl", "Age": nil},
	}

	f := &grid.AdvancedFilter{Logic: grid.AND}
	asserts.Equal(rows, f.Apply(rows))
	var nilFilter *grid.AdvancedFilter
	asserts.Equal(rows, nilFilter.Apply(rows))
	asserts.Equal([]grid.Row{}, (&grid.AdvancedFilter{Logic: grid.AND, Conditions: []grid.FilterCondition{{Field: "Age", Operator: grid.GreaterThan, Value: 99, Type: grid.Int}}}).Apply(nil))

	f = &grid.AdvancedFilter{Logic: grid.AND, Conditions: []grid.FilterCondition{
		{Field: "Age", Operator: grid.GreaterThan, Value: 10, Type: grid.Int},
		{Field: "Name", Operator: grid.StartsWith, Value: "b"},
	}}
	asserts.Equal([]grid.Row{rows[1]}, f.Apply(rows))

	f.Logic = grid.OR
	f.Conditions[1].Value = "c"
	asserts.Equal(rows, f.Apply(rows))
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid_test

import (
	"testing"

	"github.com/patrickascher/datagrid/grid"
	"github.com/stretchr/testify/assert"
)

// TestOperatorTypeOf tests the mapping of all column types.
func TestOperatorTypeOf(t *testing.T) {
	asserts := assert.New(t)

	expected := map[grid.OperatorType][]grid.ColumnType{
		grid.TextOperators:   {grid.Text, grid.Alphanumeric, grid.Textarea, grid.File, grid.Picture},
		grid.NumberOperators: {grid.Int, grid.Float, grid.Money, grid.Currency, grid.Percent},
		grid.DateOperators:   {grid.Date, grid.Time, grid.DateTime},
		grid.ListOperators:   {grid.List, grid.Combo, grid.Select, grid.Radio, grid.Checkbox, grid.Toggle},
		grid.EnumOperators:   {grid.Enum},
		grid.HexOperators:    {grid.Hex},
		grid.ColorOperators:  {grid.Color},
	}
	count := 0
	for ot, types := range expected {
		for _, ct := range types {
			asserts.Equal(ot, grid.OperatorTypeOf(ct), string(ct))
			asserts.True(ct.Valid())
			count++
		}
	}
	asserts.Equal(22, count)
	asserts.Equal(grid.TextOperators, grid.OperatorTypeOf("unknown"))
	asserts.False(grid.ColumnType("unknown").Valid())
}

// TestOperatorsFor tests:
// - the operator set of every type.
// - the default operators.
// - the returned slice is a copy.
func TestOperatorsFor(t *testing.T) {
	asserts := assert.New(t)

	asserts.ElementsMatch([]grid.Operator{grid.Equals, grid.NotEquals, grid.Contains, grid.NotContains, grid.StartsWith, grid.EndsWith, grid.IsEmpty, grid.IsNotEmpty}, grid.OperatorsFor(grid.TextOperators))
	asserts.ElementsMatch([]grid.Operator{grid.Equals, grid.NotEquals, grid.GreaterThan, grid.GreaterThanOrEqual, grid.LessThan, grid.LessThanOrEqual, grid.Between, grid.IsEmpty, grid.IsNotEmpty}, grid.OperatorsFor(grid.NumberOperators))
	asserts.ElementsMatch([]grid.Operator{grid.Equals, grid.NotEquals, grid.GreaterThan, grid.LessThan, grid.Between, grid.IsEmpty, grid.IsNotEmpty}, grid.OperatorsFor(grid.DateOperators))
	asserts.ElementsMatch([]grid.Operator{grid.Equals, grid.NotEquals, grid.IsEmpty, grid.IsNotEmpty}, grid.OperatorsFor(grid.ListOperators))
	asserts.ElementsMatch([]grid.Operator{grid.In, grid.NotIn, grid.IsEmpty, grid.IsNotEmpty}, grid.OperatorsFor(grid.EnumOperators))
	asserts.ElementsMatch([]grid.Operator{grid.Equals, grid.Between}, grid.OperatorsFor(grid.HexOperators))
	asserts.ElementsMatch([]grid.Operator{grid.Equals, grid.StartsWith, grid.Contains, grid.EndsWith}, grid.OperatorsFor(grid.ColorOperators))

	asserts.Equal(grid.StartsWith, grid.DefaultOperatorFor(grid.TextOperators))
	asserts.Equal(grid.Equals, grid.DefaultOperatorFor(grid.NumberOperators))
	asserts.Equal(grid.Equals, grid.DefaultOperatorFor(grid.DateOperators))
	asserts.Equal(grid.Equals, grid.DefaultOperatorFor(grid.ListOperators))
	asserts.Equal(grid.In, grid.DefaultOperatorFor(grid.EnumOperators))
	asserts.Equal(grid.Equals, grid.DefaultOperatorFor(grid.HexOperators))
	asserts.Equal(grid.Equals, grid.DefaultOperatorFor(grid.ColorOperators))

	ops := grid.OperatorsFor(grid.HexOperators)
	ops[0] = grid.In
	asserts.Equal(grid.Equals, grid.OperatorsFor(grid.HexOperators)[0])
}

// TestNormalizeCondition tests:
// - valid operators are kept.
// - invalid operators are replaced by the type default.
// - an empty type is text.
func TestNormalizeCondition(t *testing.T) {
	asserts := assert.New(t)

	asserts.True(grid.IsValidOperator(grid.Money, grid.Between))
	asserts.False(grid.IsValidOperator(grid.Text, grid.Between))
	asserts.False(grid.IsValidOperator(grid.Date, grid.GreaterThanOrEqual))

	c := grid.NormalizeCondition(grid.FilterCondition{Field: "Age", Operator: grid.GreaterThan, Type: grid.Int})
	asserts.Equal(grid.GreaterThan, c.Operator)

	c = grid.NormalizeCondition(grid.FilterCondition{Field: "Age", Operator: grid.Contains, Type: grid.Int})
	asserts.Equal(grid.Equals, c.Operator)

	c = grid.NormalizeCondition(grid.FilterCondition{Field: "Status", Operator: grid.Equals, Type: grid.Enum})
	asserts.Equal(grid.In, c.Operator)

	c = grid.NormalizeCondition(grid.FilterCondition{Field: "Name", Operator: "like"})
	asserts.Equal(grid.StartsWith, c.Operator)
	asserts.Equal(grid.Text, c.Type)
}

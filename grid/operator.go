// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

// OperatorType groups the column types which share the same filter operators.
type OperatorType string

// Operator types.
const (
	TextOperators   OperatorType = "text"
	NumberOperators OperatorType = "number"
	DateOperators   OperatorType = "date"
	ListOperators   OperatorType = "list"
	EnumOperators   OperatorType = "enum"
	HexOperators    OperatorType = "hex"
	ColorOperators  OperatorType = "color"
)

// Operator of a filter condition.
type Operator string

// Operators.
const (
	Equals             Operator = "equals"
	NotEquals          Operator = "notEquals"
	Contains           Operator = "contains"
	NotContains        Operator = "notContains"
	StartsWith         Operator = "startsWith"
	EndsWith           Operator = "endsWith"
	GreaterThan        Operator = "greaterThan"
	GreaterThanOrEqual Operator = "greaterThanOrEqual"
	LessThan           Operator = "lessThan"
	LessThanOrEqual    Operator = "lessThanOrEqual"
	Between            Operator = "between"
	In                 Operator = "in"
	NotIn              Operator = "notIn"
	IsEmpty            Operator = "isEmpty"
	IsNotEmpty         Operator = "isNotEmpty"
)

var operatorTypes = map[ColumnType]OperatorType{
	Text: TextOperators, Alphanumeric: TextOperators, Textarea: TextOperators, File: TextOperators, Picture: TextOperators,
	Int: NumberOperators, Float: NumberOperators, Money: NumberOperators, Currency: NumberOperators, Percent: NumberOperators,
	Date: DateOperators, Time: DateOperators, DateTime: DateOperators,
	List: ListOperators, Combo: ListOperators, Select: ListOperators, Radio: ListOperators, Checkbox: ListOperators, Toggle: ListOperators,
	Enum:  EnumOperators,
	Hex:   HexOperators,
	Color: ColorOperators,
}

// operators per type, the first entry is the default.
var operators = map[OperatorType][]Operator{
	TextOperators:   {StartsWith, Equals, NotEquals, Contains, NotContains, EndsWith, IsEmpty, IsNotEmpty},
	NumberOperators: {Equals, NotEquals, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual, Between, IsEmpty, IsNotEmpty},
	DateOperators:   {Equals, NotEquals, GreaterThan, LessThan, Between, IsEmpty, IsNotEmpty},
	ListOperators:   {Equals, NotEquals, IsEmpty, IsNotEmpty},
	EnumOperators:   {In, NotIn, IsEmpty, IsNotEmpty},
	HexOperators:    {Equals, Between},
	ColorOperators:  {Equals, StartsWith, Contains, EndsWith},
}

// OperatorTypeOf returns the operator type of the column type.
// Unknown column types are treated as text.
func OperatorTypeOf(t ColumnType) OperatorType {
	if ot, ok := operatorTypes[t]; ok {
		return ot
	}
	return TextOperators
}

// OperatorsFor returns the valid operators of the operator type.
func OperatorsFor(ot OperatorType) []Operator {
	return append([]Operator(nil), operators[ot]...)
}

// DefaultOperatorFor returns the default operator of the operator type.
func DefaultOperatorFor(ot OperatorType) Operator {
	if ops, ok := operators[ot]; ok {
		return ops[0]
	}
	return StartsWith
}

// IsValidOperator reports whether op may be used on a column of type t.
func IsValidOperator(t ColumnType, op Operator) bool {
	for _, o := range operators[OperatorTypeOf(t)] {
		if o == op {
			return true
		}
	}
	return false
}

// NormalizeCondition replaces an operator which is not valid for the condition type
// with the default operator of that type. An empty type is treated as text.
func NormalizeCondition(c FilterCondition) FilterCondition {
	if c.Type == "" {
		c.Type = Text
	}
	if !IsValidOperator(c.Type, c.Operator) {
		c.Operator = DefaultOperatorFor(OperatorTypeOf(c.Type))
	}
	return c
}

// isNumberType reports whether the column type compares numerically.
func isNumberType(t ColumnType) bool {
	return OperatorTypeOf(t) == NumberOperators
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"strings"
)

// Logic combines the conditions of a filter.
type Logic string

// Logic values.
const (
	AND Logic = "AND"
	OR  Logic = "OR"
)

// FilterCondition of a filter.
type FilterCondition struct {
	Field    string      `json:"field"`
	Operator Operator    `json:"operator"`
	Value    interface{} `json:"value"`
	Type     ColumnType  `json:"type,omitempty"`
}

// AdvancedFilter combines conditions with AND or OR logic.
// A filter without conditions does not filter.
type AdvancedFilter struct {
	Logic      Logic             `json:"logic"`
	Conditions []FilterCondition `json:"conditions"`
}

// Empty reports whether the filter has no conditions.
func (f *AdvancedFilter) Empty() bool {
	return f == nil || len(f.Conditions) == 0
}

// Copy returns a deep copy of the condition list.
func (f *AdvancedFilter) Copy() *AdvancedFilter {
	if f == nil {
		return nil
	}
	return &AdvancedFilter{Logic: f.Logic, Conditions: append([]FilterCondition(nil), f.Conditions...)}
}

// Match reports whether the row passes the filter.
func (f *AdvancedFilter) Match(row Row) bool {
	if f.Empty() {
		return true
	}
	if f.Logic == OR {
		for _, c := range f.Conditions {
			if Evaluate(row, c) {
				return true
			}
		}
		return false
	}
	for _, c := range f.Conditions {
		if !Evaluate(row, c) {
			return false
		}
	}
	return true
}

// Apply returns the matching rows. An empty filter returns the input unchanged.
func (f *AdvancedFilter) Apply(rows []Row) []Row {
	if f.Empty() {
		return rows
	}
	rv := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			rv = append(rv, r)
		}
	}
	return rv
}

// Evaluate reports whether the row value of the condition field satisfies the condition.
// Invalid operators are corrected before the evaluation and malformed values evaluate to false.
func Evaluate(row Row, c FilterCondition) bool {
	c = NormalizeCondition(c)
	v := row.Value(c.Field)

	switch c.Operator {
	case IsEmpty:
		return isEmptyValue(v)
	case IsNotEmpty:
		return !isEmptyValue(v)
	case Equals:
		return equals(v, c)
	case NotEquals:
		return !equals(v, c)
	case Contains:
		return strings.Contains(lower(v), lower(c.Value))
	case NotContains:
		return !strings.Contains(lower(v), lower(c.Value))
	case StartsWith:
		return strings.HasPrefix(lower(v), lower(c.Value))
	case EndsWith:
		return strings.HasSuffix(lower(v), lower(c.Value))
	case GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		a, ok := toFloat(v, c.Type)
		if !ok {
			return false
		}
		b, ok := toFloat(c.Value, c.Type)
		if !ok {
			return false
		}
		switch c.Operator {
		case GreaterThan:
			return a > b
		case GreaterThanOrEqual:
			return a >= b
		case LessThan:
			return a < b
		}
		return a <= b
	case Between:
		// hex strings have no defined ordering.
		if OperatorTypeOf(c.Type) == HexOperators {
			return false
		}
		lo, hi, ok := bounds(c.Value)
		if !ok {
			return false
		}
		a, okA := toFloat(v, c.Type)
		from, okFrom := toFloat(lo, c.Type)
		to, okTo := toFloat(hi, c.Type)
		return okA && okFrom && okTo && a >= from && a <= to
	case In, NotIn:
		set := toList(c.Value)
		if len(set) == 0 {
			return false
		}
		member := false
		for _, rv := range rowValues(v) {
			for _, s := range set {
				if rv == s {
					member = true
				}
			}
		}
		if c.Operator == In {
			return member
		}
		return !member
	}
	return false
}

// equals compares numerically for number and date types if both sides are numeric,
// otherwise case insensitive.
// A single element list value, as sent for list columns, is compared by its element.
func equals(v interface{}, c FilterCondition) bool {
	if l, ok := c.Value.([]interface{}); ok && len(l) == 1 {
		c.Value = l[0]
	}
	if ot := OperatorTypeOf(c.Type); ot == NumberOperators || ot == DateOperators {
		a, okA := toFloat(v, c.Type)
		b, okB := toFloat(c.Value, c.Type)
		if okA && okB {
			return a == b
		}
	}
	return strings.EqualFold(toString(v), toString(c.Value))
}

// rowValues returns the lower cased row value, or all values of a multi value field.
func rowValues(v interface{}) []string {
	switch l := v.(type) {
	case []interface{}, []string:
		return toList(l)
	case nil:
		return nil
	}
	return []string{strings.ToLower(strings.TrimSpace(toString(v)))}
}

func lower(v interface{}) string {
	return strings.ToLower(toString(v))
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"strings"
)

// WireCondition is the backend representation of a filter condition.
type WireCondition struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Type     string      `json:"type"`
	Value    interface{} `json:"value"`
}

// WireSort is the backend representation of the sort.
type WireSort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// WireRequest is the JSON body of a remote fetch.
type WireRequest struct {
	Page        int                    `json:"page"`
	Limit       int                    `json:"limit"`
	Offset      int                    `json:"offset"`
	Search      []WireCondition        `json:"search,omitempty"`
	SearchLogic Logic                  `json:"searchLogic,omitempty"`
	Sort        []WireSort             `json:"sort,omitempty"`
	Join        Joins                  `json:"join,omitempty"`
	ShowDeleted bool                   `json:"showDeleted"`
	Columns     []string               `json:"columns,omitempty"`
	Values      map[string]interface{} `json:"values,omitempty"`
}

var wireOperators = map[Operator]string{
	Equals:             "is",
	NotEquals:          "is not",
	Contains:           "contains",
	NotContains:        "not contains",
	StartsWith:         "begins",
	EndsWith:           "ends",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	Between:            "between",
	In:                 "in",
	NotIn:              "not in",
	IsEmpty:            "null",
	IsNotEmpty:         "not null",
}

// backend names which only exist for number columns.
var wireNumberOperators = map[Operator]string{
	Equals:    "=",
	NotEquals: "!=",
}

// ToWire converts the filter into backend conditions.
// The column search field replaces the field, list and enum values are always sent as list.
func ToWire(f *AdvancedFilter, columns []Column) []WireCondition {
	if f.Empty() {
		return nil
	}
	rv := make([]WireCondition, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		field := c.Field
		if col, ok := columnOf(columns, c.Field); ok {
			field = col.SearchPath()
			if c.Type == "" {
				c.Type = col.Type
			}
		}
		c = NormalizeCondition(c)
		rv = append(rv, WireCondition{
			Field:    field,
			Operator: wireOperator(c.Operator, c.Type),
			Type:     wireType(c.Type),
			Value:    wireValue(c),
		})
	}
	return rv
}

// FromWire converts backend conditions into a filter.
// Unknown operators are corrected to the default operator of the type.
func FromWire(conditions []WireCondition, logic Logic) *AdvancedFilter {
	if len(conditions) == 0 {
		return nil
	}
	if logic != OR {
		logic = AND
	}
	f := &AdvancedFilter{Logic: logic}
	for _, w := range conditions {
		t := ColumnType(strings.ToLower(w.Type))
		if !t.Valid() {
			t = Text
		}
		c := FilterCondition{Field: w.Field, Type: t, Value: w.Value, Operator: Operator(w.Operator)}
		op := strings.ToLower(strings.TrimSpace(w.Operator))
		for internal, name := range wireOperators {
			if name == op {
				c.Operator = internal
			}
		}
		for internal, name := range wireNumberOperators {
			if name == op {
				c.Operator = internal
			}
		}
		f.Conditions = append(f.Conditions, NormalizeCondition(c))
	}
	return f
}

// NewWireRequest converts the params into the backend request.
func NewWireRequest(p Params, columns []Column) WireRequest {
	w := WireRequest{
		Page:        p.Page,
		Limit:       p.Limit,
		Offset:      NewPagination(UnknownTotal, p.Limit, p.Page).offset(),
		Search:      ToWire(p.Search, columns),
		SearchLogic: p.SearchLogic,
		Join:        p.Join,
		ShowDeleted: p.ShowDeleted,
		Columns:     p.Columns,
		Values:      p.Values,
	}
	if w.SearchLogic == "" && p.Search != nil {
		w.SearchLogic = p.Search.Logic
	}
	if p.Sort != nil && p.Sort.Field != "" {
		w.Sort = []WireSort{{Field: p.Sort.Field, Direction: p.Sort.Direction}}
	}
	return w
}

// Params converts the backend request back into fetch params.
// If no page is given, it is calculated from the offset.
func (w WireRequest) Params() Params {
	p := Params{
		Page:        w.Page,
		Limit:       w.Limit,
		Search:      FromWire(w.Search, w.SearchLogic),
		SearchLogic: w.SearchLogic,
		Join:        w.Join,
		ShowDeleted: w.ShowDeleted,
		Columns:     w.Columns,
		Values:      w.Values,
	}
	if p.Page < 1 {
		p.Page = 1
		if w.Limit > 0 && w.Offset > 0 {
			p.Page = w.Offset/w.Limit + 1
		}
	}
	if len(w.Sort) > 0 {
		dir := w.Sort[0].Direction
		if dir != DESC {
			dir = ASC
		}
		p.Sort = &Sort{Field: w.Sort[0].Field, Direction: dir}
	}
	return p
}

func wireOperator(op Operator, t ColumnType) string {
	if isNumberType(t) {
		if name, ok := wireNumberOperators[op]; ok {
			return name
		}
	}
	return wireOperators[op]
}

func wireType(t ColumnType) string {
	switch OperatorTypeOf(t) {
	case TextOperators:
		return string(Text)
	case NumberOperators:
		if t == Int {
			return string(Int)
		}
		return string(Float)
	case ListOperators:
		return string(List)
	}
	return string(t)
}

func wireValue(c FilterCondition) interface{} {
	switch OperatorTypeOf(c.Type) {
	case ListOperators, EnumOperators:
		switch v := c.Value.(type) {
		case nil:
			return []interface{}{}
		case []interface{}:
			return v
		case []string:
			rv := make([]interface{}, len(v))
			for i := range v {
				rv[i] = v[i]
			}
			return rv
		case string:
			if OperatorTypeOf(c.Type) == EnumOperators {
				rv := []interface{}{}
				for _, s := range strings.Split(v, ",") {
					if s = strings.TrimSpace(s); s != "" {
						rv = append(rv, s)
					}
				}
				return rv
			}
		}
		return []interface{}{c.Value}
	}
	if c.Operator == Between {
		if lo, hi, ok := bounds(c.Value); ok {
			return []interface{}{lo, hi}
		}
	}
	return c.Value
}

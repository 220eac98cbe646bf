// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"fmt"

	valid "github.com/go-playground/validator/v10"
	"github.com/patrickascher/datagrid/grid/options"
	"github.com/patrickascher/datagrid/stringer"
	"gopkg.in/guregu/null.v4"
)

// init registers the global validator and the column type validation.
func init() {
	validate = valid.New()
	if err := validate.RegisterValidation(tagColumnType, func(fl valid.FieldLevel) bool {
		return ColumnType(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
}

// validate is a global instance.
var validate *valid.Validate

// tagColumnType is the validation tag of the column type.
const tagColumnType = "columntype"

// Error messages.
var (
	ErrColumnValidation = "grid: column %s failed on tag %s"
	ErrColumnUnique     = "grid: column %s is defined twice"
)

// ColumnType is the semantic kind of a column.
type ColumnType string

// Column types.
const (
	Text         ColumnType = "text"
	Int          ColumnType = "int"
	Float        ColumnType = "float"
	Money        ColumnType = "money"
	Currency     ColumnType = "currency"
	Percent      ColumnType = "percent"
	Date         ColumnType = "date"
	Time         ColumnType = "time"
	DateTime     ColumnType = "datetime"
	List         ColumnType = "list"
	Enum         ColumnType = "enum"
	Combo        ColumnType = "combo"
	Select       ColumnType = "select"
	Radio        ColumnType = "radio"
	Checkbox     ColumnType = "checkbox"
	Toggle       ColumnType = "toggle"
	Hex          ColumnType = "hex"
	Color        ColumnType = "color"
	Alphanumeric ColumnType = "alphanumeric"
	File         ColumnType = "file"
	Picture      ColumnType = "picture"
	Textarea     ColumnType = "textarea"
)

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	_, ok := operatorTypes[t]
	return ok
}

// Column of a grid.
// SearchField replaces Field in search and filter payloads and may be a dotted relation path.
// A column with JoinTable is only shown while one of its join tables is active.
// Visible declares an explicit visibility which takes precedence over the join computation.
type Column struct {
	Field       string         `json:"field" validate:"required"`
	Label       string         `json:"label"`
	Type        ColumnType     `json:"type" validate:"columntype"`
	Searchable  bool           `json:"searchable"`
	SearchField string         `json:"searchField,omitempty"`
	JoinTable   []string       `json:"joinTable,omitempty"`
	Options     []options.Item `json:"options,omitempty"`
	Load        *options.Load  `json:"-"`
	Width       int            `json:"width,omitempty"`
	Hidden      bool           `json:"hidden"`
	Disabled    bool           `json:"disabled,omitempty"`
	Visible     null.Bool      `json:"visible"`
}

// NewColumn creates a column with a humanized label.
func NewColumn(field string, t ColumnType) Column {
	return Column{Field: field, Type: t, Label: stringer.Humanize(field)}
}

// SetLabel of the column.
func (c Column) SetLabel(label string) Column {
	c.Label = label
	return c
}

// SetSearchable defines if the column takes part in the free text search.
func (c Column) SetSearchable(b bool) Column {
	c.Searchable = b
	return c
}

// SetSearchField defines the field path which is queried instead of the field.
func (c Column) SetSearchField(path string) Column {
	c.SearchField = path
	return c
}

// SetJoinTable binds the visibility of the column to the given joins.
func (c Column) SetJoinTable(tables ...string) Column {
	c.JoinTable = append([]string(nil), tables...)
	return c
}

// SetOptions sets static select options.
func (c Column) SetOptions(items ...options.Item) Column {
	c.Options = append([]options.Item(nil), items...)
	return c
}

// SetLoad sets the remote option configuration.
func (c Column) SetLoad(l *options.Load) Column {
	c.Load = l
	return c
}

// SetHidden declares the column hidden.
func (c Column) SetHidden(b bool) Column {
	c.Hidden = b
	return c
}

// SetVisible declares an explicit visibility.
func (c Column) SetVisible(b bool) Column {
	c.Visible = null.BoolFrom(b)
	return c
}

// SetWidth of the column.
func (c Column) SetWidth(w int) Column {
	c.Width = w
	return c
}

// SearchPath returns the search field if set, otherwise the field.
func (c Column) SearchPath() string {
	if c.SearchField != "" {
		return c.SearchField
	}
	return c.Field
}

// prepareColumns copies the columns, sets the defaults and validates them.
func prepareColumns(columns []Column) ([]Column, error) {
	rv := make([]Column, len(columns))
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		if c.Type == "" {
			c.Type = Text
		}
		if c.Label == "" {
			c.Label = stringer.Humanize(c.Field)
		}
		if err := validate.Struct(c); err != nil {
			if errs, ok := err.(valid.ValidationErrors); ok && len(errs) > 0 {
				return nil, fmt.Errorf(ErrColumnValidation, c.Field, errs[0].Tag())
			}
			return nil, fmt.Errorf("grid: %w", err)
		}
		if seen[c.Field] {
			return nil, fmt.Errorf(ErrColumnUnique, c.Field)
		}
		seen[c.Field] = true
		c.JoinTable = append([]string(nil), c.JoinTable...)
		rv[i] = c
	}
	return rv, nil
}

// columnOf returns the column matching the field or search field.
func columnOf(columns []Column, field string) (Column, bool) {
	for _, c := range columns {
		if c.Field == field || (c.SearchField != "" && c.SearchField == field) {
			return c, true
		}
	}
	return Column{}, false
}

// copyColumns returns a copy of the columns.
func copyColumns(columns []Column) []Column {
	rv := make([]Column, len(columns))
	copy(rv, columns)
	return rv
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package options provides the select options of a grid column and the configuration
// to load them from a remote endpoint.
//
// The load configuration is expressed with resolvers which receive an explicit FormState
// snapshot, so option lists can depend on the current form values (cascading dropdowns).
package options

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/patrickascher/datagrid/structer"
)

// Item represents a HTML select option.
type Item struct {
	Text    interface{} `json:"text"`
	Value   interface{} `json:"value"`
	Header  string      `json:"header,omitempty"`
	Divider bool        `json:"divider,omitempty"`
	Custom  interface{} `json:"custom,omitempty"`
}

// FormState is a snapshot of the form field values.
type FormState map[string]interface{}

// NewFormState creates a snapshot of a struct (by json tag) or a map.
func NewFormState(v interface{}) (FormState, error) {
	m, err := structer.FormState(v)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	return m, nil
}

// Value returns the value of a dotted path, or nil if the path does not exist.
func (f FormState) Value(path string) interface{} {
	var cur interface{} = map[string]interface{}(f)
	for _, p := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		if cur, ok = m[p]; !ok {
			return nil
		}
	}
	return cur
}

// URLResolver returns the URL of an option request.
type URLResolver interface {
	ResolveURL(FormState) string
}

// StaticURL is a fixed URL.
type StaticURL string

// ResolveURL returns the url itself.
func (u StaticURL) ResolveURL(FormState) string { return string(u) }

// URLFunc computes the URL from the form state.
type URLFunc func(FormState) string

// ResolveURL calls the function.
func (fn URLFunc) ResolveURL(f FormState) string { return fn(f) }

// DataResolver returns the request data of an option request.
type DataResolver interface {
	ResolveData(FormState) map[string]interface{}
}

// StaticData is a fixed request payload.
type StaticData map[string]interface{}

// ResolveData returns a copy of the data.
func (d StaticData) ResolveData(FormState) map[string]interface{} {
	rv := make(map[string]interface{}, len(d))
	for k, v := range d {
		rv[k] = v
	}
	return rv
}

// DataFunc computes the request payload from the form state.
type DataFunc func(FormState) map[string]interface{}

// ResolveData calls the function.
func (fn DataFunc) ResolveData(f FormState) map[string]interface{} { return fn(f) }

// Mapper converts a decoded response into option items.
type Mapper func(response interface{}) []Item

// Load configures the remote loading of the column options.
type Load struct {
	URL    URLResolver
	Method string
	Data   DataResolver
	Map    Mapper
	// DependsOn is the form field path whose value scopes the cached options.
	// A change of that value clears the cached options of the field.
	DependsOn string
	// TextField and ValueField are used by the default mapper (default "text" and "value").
	TextField  string
	ValueField string
}

// Request is the resolved option request.
type Request struct {
	Field  string
	URL    string
	Method string
	Data   map[string]interface{}
}

// Request resolves the load configuration against the form state.
func (l *Load) Request(field string, form FormState) Request {
	r := Request{Field: field, Method: strings.ToUpper(l.Method)}
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	if l.URL != nil {
		r.URL = l.URL.ResolveURL(form)
	}
	if l.Data != nil {
		r.Data = l.Data.ResolveData(form)
	}
	return r
}

// dependent returns the string form of the dependent value.
func (l *Load) dependent(form FormState) string {
	if l.DependsOn == "" {
		return ""
	}
	v := form.Value(l.DependsOn)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Items maps the response with the configured mapper or the default one.
// The default mapper accepts a list of objects, or an object with a records or items list.
func (l *Load) Items(response interface{}) []Item {
	if l.Map != nil {
		return l.Map(response)
	}

	text, value := l.TextField, l.ValueField
	if text == "" {
		text = "text"
	}
	if value == "" {
		value = "value"
	}

	list, ok := response.([]interface{})
	if !ok {
		if m, isMap := response.(map[string]interface{}); isMap {
			if list, ok = m["records"].([]interface{}); !ok {
				list, _ = m["items"].([]interface{})
			}
		}
	}

	items := make([]Item, 0, len(list))
	for _, e := range list {
		switch v := e.(type) {
		case map[string]interface{}:
			items = append(items, Item{Text: v[text], Value: v[value]})
		case string, float64, bool:
			items = append(items, Item{Text: v, Value: v})
		}
	}
	return items
}

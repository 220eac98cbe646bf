// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid_test

import (
	"context"
	"errors"
	"testing"

	"github.com/patrickascher/datagrid/grid"
	"github.com/patrickascher/datagrid/grid/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestCoordinator_Source tests:
// - static, dynamic and request values are merged.
// - the parent id is only added if it was not set before.
// - the fetcher is memoized while the form does not change.
// - ErrSkip results in an empty page without calling the fetcher.
// - resolver errors are returned by the fetcher.
func TestCoordinator_Source(t *testing.T) {
	asserts := assert.New(t)
	ctx := context.Background()

	f := &mockFetcher{}
	f.On("Fetch", mock.Anything).Return(grid.Response{Status: grid.StatusSuccess, Total: 1, Records: []grid.Row{{"id": 1}}}, nil)

	calls := 0
	child := grid.ChildGrid{
		ID:      "Contracts",
		Fetcher: f,
		Static:  map[string]interface{}{"type": "fixed", "year": 2020},
		Params: grid.ParamsFunc(func(form options.FormState) (map[string]interface{}, error) {
			calls++
			switch form.Value("mode") {
			case "skip":
				return nil, grid.ErrSkip
			case "fail":
				return nil, errors.New("resolver failed")
			}
			return map[string]interface{}{"year": form.Value("year")}, nil
		}),
	}

	c := grid.NewCoordinator(nil)
	form := options.FormState{"id": 7, "year": 2021}
	src := c.Source(child, form)
	_, err := src.Fetch(ctx, grid.Params{Page: 1, Values: map[string]interface{}{"lang": "de"}})
	asserts.NoError(err)
	p := f.Calls[0].Arguments.Get(0).(grid.Params)
	asserts.Equal(map[string]interface{}{"lang": "de", "type": "fixed", "year": 2021, "parent_id": 7}, p.Values)

	// an equal form reuses the fetcher.
	type order struct {
		ID   int `json:"id"`
		Year int `json:"year"`
	}
	same, err := options.NewFormState(order{ID: 7, Year: 2021})
	asserts.NoError(err)
	c.Source(child, same)
	asserts.Equal(1, calls)
	c.Source(child, options.FormState{"id": 8, "year": 2021})
	asserts.Equal(2, calls)
	c.Forget("Contracts")
	c.Source(child, options.FormState{"id": 8, "year": 2021})
	asserts.Equal(3, calls)

	// an explicit parent id is not overwritten.
	child.Static = map[string]interface{}{"parent_id": 99}
	child.ParentKey = "parent_id"
	src = c.Source(child, options.FormState{"id": 9})
	_, err = src.Fetch(ctx, grid.Params{})
	asserts.NoError(err)
	p = f.Calls[1].Arguments.Get(0).(grid.Params)
	asserts.Equal(99, p.Values["parent_id"])

	resp, err := c.Source(child, options.FormState{"mode": "skip"}).Fetch(ctx, grid.Params{})
	asserts.NoError(err)
	asserts.Equal(grid.EmptyResponse(), resp)
	f.AssertNumberOfCalls(t, "Fetch", 2)

	_, err = c.Source(child, options.FormState{"mode": "fail"}).Fetch(ctx, grid.Params{})
	asserts.Error(err)
	f.AssertNumberOfCalls(t, "Fetch", 2)

	// with the adapter, the error is normalized.
	r := grid.NewAdapter(c.Source(child, options.FormState{"mode": "fail"}), nil).Fetch(ctx, grid.Params{})
	asserts.Equal(grid.ErrorResponse(), r.Response)
}

// TestCoordinator_custom tests a custom parent key and field.
func TestCoordinator_custom(t *testing.T) {
	asserts := assert.New(t)

	f := &mockFetcher{}
	f.On("Fetch", mock.Anything).Return(grid.EmptyResponse(), nil)

	c := grid.NewCoordinator(nil)
	src := c.Source(grid.ChildGrid{ID: "Items", Fetcher: f, ParentKey: "order", ParentField: "order.no"}, options.FormState{"order": map[string]interface{}{"no": "A-1"}})
	_, err := src.Fetch(context.Background(), grid.Params{})
	asserts.NoError(err)
	p := f.Calls[0].Arguments.Get(0).(grid.Params)
	asserts.Equal(map[string]interface{}{"order": "A-1"}, p.Values)

	// without a parent id and a fetcher, an empty page is returned.
	resp, err := c.Source(grid.ChildGrid{ID: "Empty"}, options.FormState{}).Fetch(context.Background(), grid.Params{})
	asserts.NoError(err)
	asserts.Equal(grid.EmptyResponse(), resp)
}

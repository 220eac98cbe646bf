// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/patrickascher/datagrid/grid/options"
	"github.com/patrickascher/datagrid/logger"
	"github.com/zeebo/xxh3"
)

// ErrSkip can be returned by a ParamsResolver. The child grid then resolves to an
// empty successful page without calling its fetcher.
var ErrSkip = errors.New("grid: skip fetch")

// Defaults of a child grid.
const (
	defaultParentKey   = "parent_id"
	defaultParentField = "id"
)

// ParamsResolver computes the parameters of a child grid from the parent form.
type ParamsResolver interface {
	ResolveParams(form options.FormState) (map[string]interface{}, error)
}

// ParamsFunc adapts a function to the ParamsResolver interface.
type ParamsFunc func(form options.FormState) (map[string]interface{}, error)

// ResolveParams calls the function.
func (fn ParamsFunc) ResolveParams(form options.FormState) (map[string]interface{}, error) {
	return fn(form)
}

// ChildGrid describes a grid which is nested in a parent form.
type ChildGrid struct {
	ID      string
	Fetcher Fetcher
	// Static parameters of the child.
	Static map[string]interface{}
	// Params are computed from the parent form and overwrite static parameters.
	Params ParamsResolver
	// ParentKey is the parameter name of the parent id (default parent_id).
	ParentKey string
	// ParentField is the form field of the parent id (default id).
	ParentField string
}

// Coordinator builds the fetchers of child grids.
// A fetcher is memoized per child id and only rebuilt if the parent form changes.
type Coordinator struct {
	mutex   sync.Mutex
	log     logger.Manager
	entries map[string]childEntry
}

type childEntry struct {
	hash    uint64
	fetcher Fetcher
}

// NewCoordinator creates a coordinator.
func NewCoordinator(log logger.Manager) *Coordinator {
	return &Coordinator{log: log, entries: make(map[string]childEntry)}
}

// Source returns the fetcher of the child grid for the current parent form.
func (c *Coordinator) Source(child ChildGrid, form options.FormState) Fetcher {
	h := formHash(form)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if e, ok := c.entries[child.ID]; ok && e.hash == h {
		return e.fetcher
	}
	f := c.build(child, form)
	if c.log != nil {
		c.log.WithFields(logger.Fields{"child": child.ID, "hash": h}).Debug("grid: child source rebuilt")
	}
	c.entries[child.ID] = childEntry{hash: h, fetcher: f}
	return f
}

// Forget removes the memoized fetcher of the child.
func (c *Coordinator) Forget(id string) {
	c.mutex.Lock()
	delete(c.entries, id)
	c.mutex.Unlock()
}

// build resolves the parameters once and returns the merging fetcher.
func (c *Coordinator) build(child ChildGrid, form options.FormState) Fetcher {
	var dynamic map[string]interface{}
	var resolveErr error
	if child.Params != nil {
		dynamic, resolveErr = child.Params.ResolveParams(copyForm(form))
	}

	if errors.Is(resolveErr, ErrSkip) {
		return FetchFunc(func(context.Context, Params) (Response, error) {
			return EmptyResponse(), nil
		})
	}
	if resolveErr != nil {
		err := fmt.Errorf("grid: params of %s: %w", child.ID, resolveErr)
		return FetchFunc(func(context.Context, Params) (Response, error) {
			return Response{}, err
		})
	}

	parentKey, parentField := child.ParentKey, child.ParentField
	if parentKey == "" {
		parentKey = defaultParentKey
	}
	if parentField == "" {
		parentField = defaultParentField
	}
	parentID := form.Value(parentField)

	return FetchFunc(func(ctx context.Context, p Params) (Response, error) {
		values := make(map[string]interface{}, len(p.Values)+len(child.Static)+len(dynamic)+1)
		for k, v := range p.Values {
			values[k] = v
		}
		for k, v := range child.Static {
			values[k] = v
		}
		for k, v := range dynamic {
			values[k] = v
		}
		if _, ok := values[parentKey]; !ok && parentID != nil {
			values[parentKey] = parentID
		}
		p.Values = values
		if child.Fetcher == nil {
			return EmptyResponse(), nil
		}
		return child.Fetcher.Fetch(ctx, p)
	})
}

// formHash is the structural hash of the form values.
func formHash(form options.FormState) uint64 {
	b, err := json.Marshal(form)
	if err != nil {
		return xxh3.HashString(fmt.Sprintf("%#v", form))
	}
	return xxh3.Hash(b)
}

func copyForm(form options.FormState) options.FormState {
	rv := make(options.FormState, len(form))
	for k, v := range form {
		rv[k] = v
	}
	return rv
}

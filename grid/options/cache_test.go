// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package options_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/patrickascher/datagrid/cache"
	"github.com/patrickascher/datagrid/cache/memory"
	"github.com/patrickascher/datagrid/grid/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockLoader is a hand written options.Loader double.
type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) LoadOptions(ctx context.Context, req options.Request) (interface{}, error) {
	args := m.Called(req.URL)
	return args.Get(0), args.Error(1)
}

func newManager(t *testing.T) cache.Manager {
	p, err := memory.New(nil)
	assert.NoError(t, err)
	return cache.NewManager(p)
}

// TestCache_concurrent tests:
// - two concurrent loads of the same field and url result in exactly one loader call.
// - both callers receive the same list.
func TestCache_concurrent(t *testing.T) {
	asserts := assert.New(t)

	var calls int32
	loader := options.LoaderFunc(func(ctx context.Context, req options.Request) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return []interface{}{"Vienna", "Graz"}, nil
	})
	c := options.NewCache(loader, newManager(t), nil, 0)
	load := &options.Load{URL: options.StaticURL("/api/cities")}

	var wg sync.WaitGroup
	results := make([][]options.Item, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Load(context.Background(), "City", load, nil)
		}(i)
	}
	wg.Wait()

	asserts.Equal(int32(1), atomic.LoadInt32(&calls))
	asserts.Equal(results[0], results[1])
	asserts.Equal(2, len(results[0]))

	// cached
	asserts.Equal(results[0], c.Load(context.Background(), "City", load, nil))
	asserts.Equal(int32(1), atomic.LoadInt32(&calls))
}

// TestCache_empty tests:
// - an empty result is cached.
// - a loader error is cached as empty result.
// - a nil load returns nil without calling the loader.
func TestCache_empty(t *testing.T) {
	asserts := assert.New(t)

	loader := new(mockLoader)
	loader.On("LoadOptions", "/api/empty").Once().Return([]interface{}{}, nil)
	loader.On("LoadOptions", "/api/broken").Once().Return(nil, errors.New("timeout"))
	c := options.NewCache(loader, newManager(t), nil, time.Hour)

	for i := 0; i < 3; i++ {
		asserts.Equal([]options.Item{}, c.Load(context.Background(), "A", &options.Load{URL: options.StaticURL("/api/empty")}, nil))
		asserts.Equal([]options.Item{}, c.Load(context.Background(), "B", &options.Load{URL: options.StaticURL("/api/broken")}, nil))
	}
	asserts.Nil(c.Load(context.Background(), "C", nil, nil))
	loader.AssertExpectations(t)
}

// TestCache_canceled tests that a canceled or expired load is not cached.
func TestCache_canceled(t *testing.T) {
	asserts := assert.New(t)

	loader := new(mockLoader)
	loader.On("LoadOptions", "/api/cities").Once().Return(nil, fmt.Errorf("options: %w", context.Canceled))
	loader.On("LoadOptions", "/api/cities").Once().Return(nil, context.DeadlineExceeded)
	loader.On("LoadOptions", "/api/cities").Once().Return([]interface{}{"Vienna"}, nil)
	c := options.NewCache(loader, newManager(t), nil, 0)
	load := &options.Load{URL: options.StaticURL("/api/cities")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	asserts.Equal([]options.Item{}, c.Load(ctx, "City", load, nil))
	asserts.Equal([]options.Item{}, c.Load(context.Background(), "City", load, nil))
	asserts.Equal([]options.Item{{Text: "Vienna", Value: "Vienna"}}, c.Load(context.Background(), "City", load, nil))
	asserts.Equal([]options.Item{{Text: "Vienna", Value: "Vienna"}}, c.Load(context.Background(), "City", load, nil))
	loader.AssertExpectations(t)
}

// TestCache_dependent tests:
// - the dependent value is part of the key.
// - a change of the dependent value clears the old entries of the field.
// - other fields are not affected.
// - Invalidate forces a new load.
func TestCache_dependent(t *testing.T) {
	asserts := assert.New(t)

	loader := new(mockLoader)
	loader.On("LoadOptions", "/api/cities").Return([]interface{}{"x"}, nil)
	loader.On("LoadOptions", "/api/countries").Return([]interface{}{"AT", "DE"}, nil)
	m := newManager(t)
	c := options.NewCache(loader, m, nil, 0)

	city := &options.Load{URL: options.StaticURL("/api/cities"), DependsOn: "country"}
	country := &options.Load{URL: options.StaticURL("/api/countries")}

	c.Load(context.Background(), "Country", country, nil)
	c.Load(context.Background(), "City", city, options.FormState{"country": "AT"})
	c.Load(context.Background(), "City", city, options.FormState{"country": "AT"})
	loader.AssertNumberOfCalls(t, "LoadOptions", 2)
	asserts.True(m.Exist("options_City", "/api/cities|AT"))

	c.Load(context.Background(), "City", city, options.FormState{"country": "DE"})
	loader.AssertNumberOfCalls(t, "LoadOptions", 3)
	asserts.False(m.Exist("options_City", "/api/cities|AT"))
	asserts.True(m.Exist("options_City", "/api/cities|DE"))
	asserts.True(m.Exist("options_Country", "/api/countries|"))

	c.Invalidate("Country")
	c.Load(context.Background(), "Country", country, nil)
	loader.AssertNumberOfCalls(t, "LoadOptions", 4)
}

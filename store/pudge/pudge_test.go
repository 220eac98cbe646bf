// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pudge_test

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/patrickascher/datagrid/store"
	"github.com/patrickascher/datagrid/store/pudge"
	"github.com/stretchr/testify/assert"
)

// TestProvider tests:
// - mandatory options.
// - set, get and remove.
// - store.ErrNotFound for missing keys.
// - values survive a reopen.
func TestProvider(t *testing.T) {
	asserts := assert.New(t)

	_, err := store.New(store.PUDGE, nil)
	asserts.True(errors.Is(err, pudge.ErrOptions))

	file := filepath.Join(t.TempDir(), "grid.db")
	s, err := store.New(store.PUDGE, pudge.Options{File: file})
	asserts.NoError(err)

	key := store.GridKey("Employees", store.ShowDeleted)
	asserts.NoError(s.Set(key, []byte("true")))
	b, err := s.Get(key)
	asserts.NoError(err)
	asserts.Equal("true", string(b))

	_, err = s.Get("grid_Employees_joins")
	asserts.True(errors.Is(err, store.ErrNotFound))

	asserts.NoError(s.(io.Closer).Close())
	s, err = pudge.New(pudge.Options{File: file})
	asserts.NoError(err)
	b, err = s.Get(key)
	asserts.NoError(err)
	asserts.Equal("true", string(b))

	asserts.NoError(s.Remove(key))
	asserts.True(errors.Is(s.Remove(key), store.ErrNotFound))
	asserts.NoError(s.(io.Closer).Close())
}

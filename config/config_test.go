// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/patrickascher/datagrid/config"
	"github.com/patrickascher/datagrid/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Parse(cfg interface{}, options interface{}) error {
	return m.Called(cfg, options).Error(0)
}

// TestLoad tests:
// - error if the config is no ptr.
// - error if the registered value is no config.Interface.
// - error if the provider does not exist.
// - provider errors and success.
func TestLoad(t *testing.T) {
	asserts := assert.New(t)

	cfg := config.Application{}
	options := "something"
	p := new(mockProvider)
	asserts.NoError(registry.Set("config-mock", p))
	asserts.NoError(registry.Set("config-err-interface", "x"))

	asserts.Equal(config.ErrPointer, config.Load("config-mock", cfg, options))
	asserts.Equal(config.ErrInterface, config.Load("config-err-interface", &cfg, options))

	err := config.Load("config-not-existing", &cfg, options)
	asserts.Error(err)
	asserts.NotNil(errors.Unwrap(err))

	p.On("Parse", &cfg, options).Once().Return(errors.New("an error"))
	asserts.Equal(errors.New("an error"), config.Load("config-mock", &cfg, options))

	p.On("Parse", &cfg, options).Once().Return(nil)
	asserts.NoError(config.Load("config-mock", &cfg, options))

	p.AssertExpectations(t)
}

// TestOptions_TTL tests:
// - ISO-8601 durations.
// - go durations.
// - invalid durations return an error.
func TestOptions_TTL(t *testing.T) {
	asserts := assert.New(t)

	d, err := config.Options{}.TTL()
	asserts.NoError(err)
	asserts.Equal(time.Duration(0), d)

	d, err = config.Options{CacheTTL: "90m"}.TTL()
	asserts.NoError(err)
	asserts.Equal(90*time.Minute, d)

	d, err = config.Options{CacheTTL: "P1D"}.TTL()
	asserts.NoError(err)
	asserts.Equal(24*time.Hour, d)

	d, err = config.Options{CacheTTL: "PT1H30M"}.TTL()
	asserts.NoError(err)
	asserts.Equal(90*time.Minute, d)

	d, err = config.Options{CacheTTL: "pt1h"}.TTL()
	asserts.NoError(err)
	asserts.Equal(time.Hour, d)

	_, err = config.Options{CacheTTL: "soon"}.TTL()
	asserts.Error(err)
	_, err = config.Options{CacheTTL: "1d"}.TTL()
	asserts.Error(err)
}

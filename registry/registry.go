// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package registry provides a simple container for the providers of the application.
// Cache, store, logger and config providers are registered here by a prefixed name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Error messages
var (
	ErrUnknownEntry       = "registry: unknown registry name %#v, maybe you forgot to set it"
	ErrMandatoryArguments = errors.New("registry: one or more arguments have a zero-value")
	ErrAlreadyExists      = "registry: %v is already registered"
)

var (
	mutex     sync.RWMutex
	registry  = make(map[string]interface{})
	validator []Validate
)

// Validate defines a prefix and custom function which is called before a value with that prefix is added.
// The custom function will receive the registry name and registry value as arguments.
type Validate struct {
	Prefix string
	Fn     func(string, interface{}) error
}

// Validator adds a validation function for all names with the given prefix.
// Only one validator per prefix is allowed.
func Validator(validate Validate) error {
	if validate.Prefix == "" || validate.Fn == nil {
		return ErrMandatoryArguments
	}

	mutex.Lock()
	defer mutex.Unlock()
	if validatorOf(validate.Prefix) != nil {
		return fmt.Errorf(ErrAlreadyExists, "validator prefix "+validate.Prefix)
	}
	validator = append(validator, validate)
	return nil
}

// validatorOf returns the first validator whose prefix matches the name.
func validatorOf(name string) *Validate {
	for i := range validator {
		if strings.HasPrefix(name, validator[i].Prefix) {
			return &validator[i]
		}
	}
	return nil
}

// Set a value by name.
// The name and value must have a non-zero value, and the name must be unique.
func Set(name string, value interface{}) error {
	if value == nil || name == "" {
		return ErrMandatoryArguments
	}

	mutex.Lock()
	defer mutex.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf(ErrAlreadyExists, name)
	}
	if v := validatorOf(name); v != nil {
		if err := v.Fn(name, value); err != nil {
			return fmt.Errorf("registry: %w", err)
		}
	}

	registry[name] = value
	return nil
}

// Get returns the value by the registered name.
// If the registry name does not exist, an error will return.
func Get(name string) (interface{}, error) {
	mutex.RLock()
	v, ok := registry[name]
	mutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf(ErrUnknownEntry, name)
	}
	return v, nil
}

// Names returns all registered names with the given prefix, sorted and without the prefix.
func Names(prefix string) []string {
	mutex.RLock()
	defer mutex.RUnlock()
	var rv []string
	for n := range registry {
		if strings.HasPrefix(n, prefix) {
			rv = append(rv, strings.TrimPrefix(n, prefix))
		}
	}
	sort.Strings(rv)
	return rv
}

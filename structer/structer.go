// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package structer provides struct helpers for merging configurations and
// taking map snapshots of structs.
package structer

import (
	"fmt"

	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
)

// Merge options.
const (
	Override = iota + 1
	OverrideWithZeroValue
)

// Merge fills the zero fields of dst with the values of src.
// With Override, non-zero src values replace the dst values.
func Merge(dst interface{}, src interface{}, opts ...int) error {
	if err := mergo.Merge(dst, src, mergeOptions(opts)...); err != nil {
		return fmt.Errorf("structer: %w", err)
	}
	return nil
}

func mergeOptions(opts []int) []func(*mergo.Config) {
	var rv []func(*mergo.Config)
	for _, o := range opts {
		switch o {
		case Override:
			rv = append(rv, mergo.WithOverride)
		case OverrideWithZeroValue:
			rv = append(rv, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue)
		}
	}
	return rv
}

// FormState returns a map snapshot of the given struct or map.
// The json tag is used as key name. Maps are copied shallow.
func FormState(v interface{}) (map[string]interface{}, error) {
	if v == nil {
		return map[string]interface{}{}, nil
	}
	if m, ok := v.(map[string]interface{}); ok {
		rv := make(map[string]interface{}, len(m))
		for k, val := range m {
			rv[k] = val
		}
		return rv, nil
	}

	rv := map[string]interface{}{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &rv})
	if err != nil {
		return nil, fmt.Errorf("structer: %w", err)
	}
	if err = dec.Decode(v); err != nil {
		return nil, fmt.Errorf("structer: %w", err)
	}
	return rv, nil
}

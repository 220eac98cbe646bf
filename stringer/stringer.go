// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stringer

import (
	"strings"

	"github.com/serenize/snaker"
)

// CamelToSnake of the given string.
func CamelToSnake(s string) string {
	return snaker.CamelToSnake(s)
}

// Humanize returns a label for a field name.
// Dotted paths use the last segment, "FirstName" and "first_name" both become "First name".
func Humanize(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	s := strings.TrimSpace(strings.ReplaceAll(snaker.CamelToSnake(field), "_", " "))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

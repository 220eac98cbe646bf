// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slicer

import "strings"

// StringExists checks if the given string exists in the string slice.
// If it exists, the position and a boolean `true` will return
func StringExists(slice []string, search string) (int, bool) {
	for i, s := range slice {
		if s == search {
			return i, true
		}
	}
	return 0, false
}

// StringUnique will unique all strings in the given slice and keeps the order.
func StringUnique(slice []string) []string {
	keys := make(map[string]bool)
	list := []string{}
	for _, entry := range slice {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

// StringSplit splits s by sep, trims every part and drops empty parts.
func StringSplit(s string, sep string) []string {
	var rv []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			rv = append(rv, p)
		}
	}
	return rv
}

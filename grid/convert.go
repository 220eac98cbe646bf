// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/patrickascher/datagrid/slicer"
	"gopkg.in/guregu/null.v4"
)

// dateLayouts which are accepted for date, time and datetime values.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

// toString converts a value for the string operators.
func toString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case null.String:
		return s.String
	case time.Time:
		return s.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// toFloat converts a value for the numeric operators.
// For date types, dates are converted into unix milliseconds.
// Empty strings, booleans and unknown types are not numeric.
func toFloat(v interface{}, t ColumnType) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case null.Int:
		return float64(n.Int64), n.Valid
	case null.Float:
		return n.Float64, n.Valid
	case time.Time:
		return float64(n.UnixNano() / int64(time.Millisecond)), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if f, ok := parseNumber(s); ok {
			return f, true
		}
		if OperatorTypeOf(t) == DateOperators {
			for _, l := range dateLayouts {
				if tm, err := time.Parse(l, s); err == nil {
					return float64(tm.UnixNano() / int64(time.Millisecond)), true
				}
			}
		}
	}
	return 0, false
}

// parseNumber parses a trimmed decimal number, the Infinity literal or a 0x, 0o, 0b integer.
// NaN and other spellings of infinity are not numeric.
func parseNumber(s string) (float64, bool) {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		if strings.Contains(s, "_") {
			return 0, false
		}
		i, err := strconv.ParseUint(s, 0, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return float64(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// overflow is still a number (+-Inf or 0).
		return f, errors.Is(err, strconv.ErrRange)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isEmptyValue treats nil, empty and whitespace strings as empty.
func isEmptyValue(v interface{}) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	case null.String:
		return !s.Valid || strings.TrimSpace(s.String) == ""
	case []interface{}:
		return len(s) == 0
	}
	return false
}

// toList converts a comma separated string or a slice into a lower cased list.
func toList(v interface{}) []string {
	var rv []string
	switch l := v.(type) {
	case string:
		for _, s := range slicer.StringSplit(l, ",") {
			rv = append(rv, strings.ToLower(s))
		}
	case []string:
		for _, s := range l {
			rv = append(rv, strings.ToLower(strings.TrimSpace(s)))
		}
	case []interface{}:
		for _, s := range l {
			if s != nil {
				rv = append(rv, strings.ToLower(strings.TrimSpace(toString(s))))
			}
		}
	}
	return rv
}

// bounds returns the min and max value of a between condition.
// Accepted are "min,max" strings and slices with two elements.
func bounds(v interface{}) (interface{}, interface{}, bool) {
	switch b := v.(type) {
	case string:
		p := strings.Split(b, ",")
		if len(p) == 2 {
			return strings.TrimSpace(p[0]), strings.TrimSpace(p[1]), true
		}
	case []interface{}:
		if len(b) == 2 {
			return b[0], b[1], true
		}
	case []string:
		if len(b) == 2 {
			return b[0], b[1], true
		}
	case []float64:
		if len(b) == 2 {
			return b[0], b[1], true
		}
	case []int:
		if len(b) == 2 {
			return b[0], b[1], true
		}
	}
	return nil, nil, false
}

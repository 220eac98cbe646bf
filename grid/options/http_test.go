// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package options_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/patrickascher/datagrid/grid/options"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

// TestHTTPLoader tests:
// - GET data is sent as query.
// - POST data is sent as JSON body.
// - non 2xx status returns an error.
func TestHTTPLoader(t *testing.T) {
	asserts := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cities":
			_ = json.NewEncoder(w).Encode([]interface{}{map[string]interface{}{"text": r.URL.Query().Get("country"), "value": 1}})
		case "/api/search":
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"records": []interface{}{body["q"]}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	l := &options.HTTPLoader{BaseURL: srv.URL, Limiter: rate.NewLimiter(rate.Inf, 1)}

	raw, err := l.LoadOptions(context.Background(), options.Request{URL: "/api/cities", Method: "GET", Data: map[string]interface{}{"country": "AT"}})
	asserts.NoError(err)
	load := &options.Load{}
	asserts.Equal([]options.Item{{Text: "AT", Value: float64(1)}}, load.Items(raw))

	raw, err = l.LoadOptions(context.Background(), options.Request{URL: "/api/search", Method: "POST", Data: map[string]interface{}{"q": "Graz"}})
	asserts.NoError(err)
	asserts.Equal([]options.Item{{Text: "Graz", Value: "Graz"}}, load.Items(raw))

	_, err = l.LoadOptions(context.Background(), options.Request{URL: "/api/unknown", Method: "GET"})
	asserts.Error(err)
}

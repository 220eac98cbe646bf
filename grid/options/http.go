// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package options

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

// Error messages.
var (
	ErrStatus = "options: %s responded with status %d"
)

// HTTPLoader loads options from a HTTP endpoint.
// GET requests send the data as query parameters, all other methods as JSON body.
type HTTPLoader struct {
	Client  *http.Client
	BaseURL string
	Header  http.Header
	// Limiter paces the requests if set.
	Limiter *rate.Limiter
}

// LoadOptions performs the request and decodes the JSON response.
func (h *HTTPLoader) LoadOptions(ctx context.Context, req Request) (interface{}, error) {
	if h.Limiter != nil {
		if err := h.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
	}

	u, err := url.Parse(h.BaseURL + req.URL)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	var body io.Reader
	if req.Method == http.MethodGet || req.Method == "" {
		q := u.Query()
		for k, v := range req.Data {
			q.Set(k, fmt.Sprint(v))
		}
		u.RawQuery = q.Encode()
	} else if req.Data != nil {
		b, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
		body = bytes.NewReader(b)
	}

	r, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	for k, v := range h.Header {
		r.Header[k] = v
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(r)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf(ErrStatus, req.URL, resp.StatusCode)
	}

	var rv interface{}
	if err = json.NewDecoder(resp.Body).Decode(&rv); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	return rv, nil
}

// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Error messages.
var (
	ErrHTTPStatus = "grid: %s responded with status %d"
)

// HTTPSource fetches pages from a remote endpoint.
// The params are posted as WireRequest, the endpoint responds with a Response.
// Filtering, sorting and pagination are done by the endpoint.
type HTTPSource struct {
	URL     string
	Columns []Column
	Client  *http.Client
	Header  http.Header
	// Limiter paces the requests if set.
	Limiter *rate.Limiter
}

// Fetch posts the wire request and decodes the response.
func (h *HTTPSource) Fetch(ctx context.Context, p Params) (Response, error) {
	if h.Limiter != nil {
		if err := h.Limiter.Wait(ctx); err != nil {
			return Response{}, fmt.Errorf("grid: %w", err)
		}
	}

	b, err := json.Marshal(NewWireRequest(p, h.Columns))
	if err != nil {
		return Response{}, fmt.Errorf("grid: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(b))
	if err != nil {
		return Response{}, fmt.Errorf("grid: %w", err)
	}
	for k, v := range h.Header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("grid: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, fmt.Errorf(ErrHTTPStatus, h.URL, resp.StatusCode)
	}

	var rv Response
	if err = json.NewDecoder(resp.Body).Decode(&rv); err != nil {
		return Response{}, fmt.Errorf("grid: %w", err)
	}
	return rv, nil
}

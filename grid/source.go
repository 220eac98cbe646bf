// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/patrickascher/datagrid/logger"
)

// Status of a response.
type Status string

// Response status values.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Response is one page of rows. Total is UnknownTotal if the source does not know it.
type Response struct {
	Status  Status                 `json:"status"`
	Total   int                    `json:"total"`
	Records []Row                  `json:"records"`
	Summary map[string]interface{} `json:"summary,omitempty"`
}

// Params of a fetch.
// Values carries additional query parameters, like the parent id of a nested grid.
type Params struct {
	Page        int                    `json:"page"`
	Limit       int                    `json:"limit"`
	Search      *AdvancedFilter        `json:"search,omitempty"`
	SearchLogic Logic                  `json:"searchLogic,omitempty"`
	Sort        *Sort                  `json:"sort,omitempty"`
	Join        Joins                  `json:"join,omitempty"`
	ShowDeleted bool                   `json:"showDeleted"`
	Columns     []string               `json:"columns,omitempty"`
	Values      map[string]interface{} `json:"values,omitempty"`
}

// Fetcher returns one page of rows.
type Fetcher interface {
	Fetch(ctx context.Context, p Params) (Response, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, p Params) (Response, error)

// Fetch calls the function.
func (fn FetchFunc) Fetch(ctx context.Context, p Params) (Response, error) {
	return fn(ctx, p)
}

// ErrorResponse is the normalized response of a failed fetch.
func ErrorResponse() Response {
	return Response{Status: StatusError, Total: 0, Records: []Row{}}
}

// EmptyResponse is a successful response without rows.
func EmptyResponse() Response {
	return Response{Status: StatusSuccess, Total: 0, Records: []Row{}}
}

// Result of an adapter fetch.
// Applied reports whether the fetch was still the latest issued fetch when it completed.
type Result struct {
	Response
	Token   uint64
	Applied bool
}

// Adapter wraps a fetcher. It never returns an error and marks every fetch with an
// increasing token, so a superseded response can be discarded.
type Adapter struct {
	fetcher Fetcher
	log     logger.Manager
	token   uint64
}

// NewAdapter creates an adapter for the fetcher.
func NewAdapter(f Fetcher, log logger.Manager) *Adapter {
	return &Adapter{fetcher: f, log: log}
}

// Next issues a new token. All previously issued tokens are superseded.
func (a *Adapter) Next() uint64 {
	return atomic.AddUint64(&a.token, 1)
}

// IsLatest reports whether the token is the latest issued token.
func (a *Adapter) IsLatest(token uint64) bool {
	return atomic.LoadUint64(&a.token) == token
}

// Fetch issues a new token and fetches the page.
// Errors, error responses and panics of the fetcher result in an ErrorResponse.
func (a *Adapter) Fetch(ctx context.Context, p Params) Result {
	return a.FetchToken(ctx, a.Next(), p)
}

// FetchToken fetches the page for an already issued token.
func (a *Adapter) FetchToken(ctx context.Context, token uint64, p Params) Result {
	resp, err := a.call(ctx, p)
	if err == nil && resp.Status == StatusError {
		err = fmt.Errorf("grid: source responded with status %s", StatusError)
	}
	if err != nil {
		if a.log != nil {
			a.log.WithFields(logger.Fields{"token": token}).Warning(err.Error())
		}
		resp = ErrorResponse()
	}
	if resp.Status == "" {
		resp.Status = StatusSuccess
	}
	if resp.Records == nil {
		resp.Records = []Row{}
	}

	r := Result{Response: resp, Token: token, Applied: a.IsLatest(token)}
	if !r.Applied && a.log != nil {
		a.log.WithFields(logger.Fields{"token": token}).Debug("grid: superseded response discarded")
	}
	return r
}

func (a *Adapter) call(ctx context.Context, p Params) (resp Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("grid: source panic: %v", r)
		}
	}()
	if a.fetcher == nil {
		return EmptyResponse(), nil
	}
	return a.fetcher.Fetch(ctx, p)
}

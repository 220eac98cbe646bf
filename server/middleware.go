// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"fmt"
	"net/http"

	"github.com/patrickascher/datagrid/logger"
)

// MiddlewareFunc wraps a handler.
type MiddlewareFunc func(http.HandlerFunc) http.HandlerFunc

// Middleware is holding all added middleware(s).
type Middleware struct {
	mws []MiddlewareFunc
}

// NewMiddleware creates a middleware chain.
func NewMiddleware(m ...MiddlewareFunc) *Middleware {
	return &Middleware{append([]MiddlewareFunc(nil), m...)}
}

// Append one or more middleware(s).
func (c *Middleware) Append(m ...MiddlewareFunc) *Middleware {
	c.mws = append(c.mws, m...)
	return c
}

// Handle all defined middleware(s) in the order they were added to the chain.
func (c *Middleware) Handle(h http.HandlerFunc) http.HandlerFunc {
	for i := range c.mws {
		h = c.mws[len(c.mws)-i-1](h)
	}
	return h
}

// requestLogger logs every request with remoteAddr, HTTP method, URL, proto, status, size and duration.
// A status < 400 is logged as info, otherwise as error.
type requestLogger struct {
	manager logger.Manager
}

// NewLogger creates the request logger.
func NewLogger(manager logger.Manager) *requestLogger {
	return &requestLogger{manager: manager}
}

// MW must be passed to the middleware.
func (l *requestLogger) MW(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := l.manager.WithTimer()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		h(rw, r)

		msg := fmt.Sprintf("%s %s %s %s %d %d", r.RemoteAddr, r.Method, r.URL.Path, r.Proto, rw.status, rw.size)
		if rw.status < 400 {
			log.Info(msg)
			return
		}
		log.Error(msg)
	}
}

// responseWriter records the size and HTTP status of the response.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

// WriteHeader is adding the HTTP status of the response to the responseWriter struct.
func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Write is adding the size of the response to the responseWriter struct.
func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

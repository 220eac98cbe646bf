// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/patrickascher/datagrid/grid"
	"github.com/patrickascher/datagrid/logger"
)

// Error messages.
var (
	ErrOptionsNotExist = "server: options of %s are not registered"
)

// fetchHandler fetches the requested page of the dataset.
// Source errors are answered with the normalized error response.
func (s *Server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("grid")
	d, ok := s.dataset(id)
	if !ok {
		s.error(w, http.StatusNotFound, fmt.Errorf(ErrGridNotExist, id))
		return
	}

	var req grid.WireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, http.StatusBadRequest, fmt.Errorf("server: %w", err))
		return
	}

	res := grid.NewAdapter(d.Source, s.log.WithFields(logger.Fields{"grid": id})).Fetch(r.Context(), req.Params())
	s.json(w, http.StatusOK, res.Response)
}

// columnsHandler returns the resolved columns of the grid.
func (s *Server) columnsHandler(w http.ResponseWriter, r *http.Request) {
	g, err := s.Grid(httprouter.ParamsFromContext(r.Context()).ByName("grid"))
	if err != nil {
		s.error(w, http.StatusNotFound, err)
		return
	}
	s.json(w, http.StatusOK, map[string]interface{}{"columns": g.Columns(), "joins": g.Joins()})
}

// optionsHandler returns the options of the field. The query values are passed to the options func.
func (s *Server) optionsHandler(w http.ResponseWriter, r *http.Request) {
	field := httprouter.ParamsFromContext(r.Context()).ByName("field")
	fn, ok := s.optionsFunc(field)
	if !ok {
		s.error(w, http.StatusNotFound, fmt.Errorf(ErrOptionsNotExist, field))
		return
	}
	query := map[string]string{}
	for k := range r.URL.Query() {
		query[k] = r.URL.Query().Get(k)
	}
	s.json(w, http.StatusOK, map[string]interface{}{"records": fn(query)})
}

func (s *Server) json(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warning(err.Error())
	}
}

func (s *Server) error(w http.ResponseWriter, status int, err error) {
	s.json(w, status, map[string]string{"status": string(grid.StatusError), "message": err.Error()})
}

/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Tablekit Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server serves grids over HTTP. Rendering is stateless: every
// request parses the interaction state from the URL, builds a grid over
// the requested table and renders it to HTML. All interactive elements
// are links back into the server with the state toggled.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tablekit/tablekit/core/colspec"
	"github.com/tablekit/tablekit/core/grid"
	"github.com/tablekit/tablekit/core/paging"
	"github.com/tablekit/tablekit/core/presets"
	"github.com/tablekit/tablekit/core/rendering"
	"github.com/tablekit/tablekit/core/scrolling"
	"github.com/tablekit/tablekit/core/urlstate"
	"github.com/tablekit/tablekit/core/views"
	"github.com/tablekit/tablekit/datasources"
	"github.com/tablekit/tablekit/logger"
)

// defaultVisibleColumns caps how many columns show when the URL names
// none and no default is configured for the table.
const defaultVisibleColumns = 4

// defaultPageSize is the page size used when the URL carries none.
const defaultPageSize = 25

// TablePath is the path grids are served under.
const TablePath = "/table"

// Server holds the dependencies of the HTTP surface.
type Server struct {
	manager  *datasources.Manager
	renderer *rendering.GridRenderer
	presets  presets.Store
	title    string

	defaultColumns map[string][]string
	scrollDims     map[string]scrolling.Dimensions

	log logger.Logger
}

// NewServer creates a server over the given data source manager.
func NewServer(manager *datasources.Manager, title string) (*Server, error) {
	renderer, err := rendering.NewGridRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	return &Server{
		manager:        manager,
		renderer:       renderer,
		title:          title,
		defaultColumns: make(map[string][]string),
		scrollDims:     make(map[string]scrolling.Dimensions),
		log:            logger.New("server"),
	}, nil
}

// SetDefaultColumns configures which columns a table shows when the URL
// names none.
func (s *Server) SetDefaultColumns(table string, cols []string) {
	s.defaultColumns[table] = cols
}

// SetScroll declares the scrollable dimensions of a table, enabling
// horizontal overflow and sticky columns.
func (s *Server) SetScroll(table string, d scrolling.Dimensions) {
	s.scrollDims[table] = d
}

// SetPresetStore enables the saved-view endpoints.
func (s *Server) SetPresetStore(store presets.Store) {
	s.presets = store
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc(TablePath, s.handleTable)
	mux.HandleFunc("/presets", s.handlePresets)
	return s.logRequests(mux)
}

// logRequests wraps the mux with structured request logging.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.status,
			"duration", time.Since(start).String(),
		)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var summaries []views.TableSummary
	for _, name := range s.manager.Names() {
		table, err := s.manager.Load(r.Context(), name)
		if err != nil {
			s.log.Error("loading table for landing", err)
			continue
		}
		summaries = append(summaries, views.TableSummary{
			Name:  name,
			RowsN: len(table.Rows),
			ColsN: len(table.Columns),
		})
	}

	vm := views.BuildLandingViewModel(s.title, TablePath, summaries)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderLanding(w, vm); err != nil {
		s.log.Error("rendering landing page", err)
	}
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	q := urlstate.NewQuery(r.URL)
	if q.Table == "" {
		http.Error(w, "table parameter is required", http.StatusBadRequest)
		return
	}

	table, err := s.manager.Load(r.Context(), q.Table)
	if err != nil {
		http.Error(w, fmt.Sprintf("table %q not found", q.Table), http.StatusNotFound)
		return
	}

	if q.Columns == nil {
		q.Columns = s.defaultColumnsFor(q.Table, table)
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	cols := s.applyWidths(table.Columns, q.ColumnWidths)
	title := titleCase(q.Table)

	g := grid.New(grid.Config{
		Columns:    cols,
		DataSource: table.Rows,
		Title:      title,
		Pagination: paging.Uncontrolled(page, pageSize),
		Scroll:     s.scrollDims[q.Table],
		ColumnSettings: &grid.ColumnSettings{
			AllColumns:  cols,
			VisibleKeys: q.Columns,
		},
		Filters: q.FilterState(),
		Sort:    q.SortState(),
	})
	defer g.Close()

	vm := views.BuildGridViewModel(g, q, title)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		s.log.Error("rendering grid", err)
	}
}

// defaultColumnsFor picks the visible columns for a table with none in
// the URL: the configured default, else the first few columns of a wide
// table, else all of them.
func (s *Server) defaultColumnsFor(name string, table *datasources.Table) []string {
	if cols := s.defaultColumns[name]; cols != nil {
		return cols
	}
	if len(table.Columns) <= defaultVisibleColumns {
		return nil
	}
	ids := make([]string, 0, defaultVisibleColumns)
	for _, col := range table.Columns[:defaultVisibleColumns] {
		id := col.Key
		if id == "" {
			id = col.DataIndex
		}
		ids = append(ids, id)
	}
	return ids
}

// applyWidths overlays URL-declared column widths onto the definitions.
func (s *Server) applyWidths(cols []colspec.Column, widths map[string]int) []colspec.Column {
	if len(widths) == 0 {
		return cols
	}
	out := make([]colspec.Column, len(cols))
	copy(out, cols)
	for i := range out {
		id := out[i].Key
		if id == "" {
			id = out[i].DataIndex
		}
		if w, ok := widths[id]; ok && w > 0 {
			out[i].Width = strconv.Itoa(w)
		}
	}
	return out
}

// handlePresets is a small JSON API over the preset store:
// GET ?table= lists, GET ?id= fetches, POST saves, DELETE ?id= removes.
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		http.Error(w, "presets not configured", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		if id := r.URL.Query().Get("id"); id != "" {
			p, ok, err := s.presets.Get(id)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Error(w, "preset not found", http.StatusNotFound)
				return
			}
			writeJSON(w, p)
			return
		}
		list, err := s.presets.List(r.URL.Query().Get("table"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, list)

	case http.MethodPost:
		var p presets.Preset
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid preset body", http.StatusBadRequest)
			return
		}
		if p.Table == "" {
			http.Error(w, "preset table is required", http.StatusBadRequest)
			return
		}
		saved, err := s.presets.Save(p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, saved)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id parameter is required", http.StatusBadRequest)
			return
		}
		if err := s.presets.Delete(id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// titleCase derives a page title from a table name.
func titleCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

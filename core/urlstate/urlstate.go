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

// Package urlstate encodes the full interaction state of a grid view in
// the URL query string, so every header click, filter toggle and page
// move is an ordinary link and views stay bookmarkable.
package urlstate

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/safehtml"

	"github.com/tablekit/tablekit/core/pipeline"
)

// Query represents the parsed state of a grid view URL
type Query struct {
	// Base path (e.g., "/table")
	Path string

	// Core parameters
	Table        string              // The table being viewed
	Columns      []string            // Ordered list of visible column keys (nil = all visible)
	ColumnWidths map[string]int      // Column widths in pixels (columnKey -> width)
	Filters      map[string][]string // Accepted values per column (columnKey -> values)
	Sort         string              // Sorted column key ("" = unsorted)
	Dir          pipeline.Direction  // Sort direction
	Page         int                 // Requested page (1-based)
	PageSize     int                 // Rows per page
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:         u.Path,
		Filters:      make(map[string][]string),
		ColumnWidths: make(map[string]int),
		Page:         1,
	}

	q := u.Query()

	state.Table = q.Get("table")

	// Extract columns parameter (format: col1:width,col2,col3:width).
	// An absent parameter means all columns visible; "columns=" with an
	// empty value means none.
	if columnsStr, present := q["columns"]; present {
		state.Columns = []string{}
		for _, part := range strings.Split(columnsStr[0], ",") {
			if part == "" {
				continue
			}
			if colonIdx := strings.LastIndex(part, ":"); colonIdx != -1 {
				colKey := part[:colonIdx]
				if width, err := strconv.Atoi(part[colonIdx+1:]); err == nil && width > 0 {
					state.Columns = append(state.Columns, colKey)
					state.ColumnWidths[colKey] = width
					continue
				}
			}
			state.Columns = append(state.Columns, part)
		}
	}

	// Extract filter parameters (format: filter:columnKey=value, repeated
	// for each accepted value of the column)
	for key, values := range q {
		if strings.HasPrefix(key, "filter:") && len(values) > 0 {
			columnKey := strings.TrimPrefix(key, "filter:")
			for _, v := range values {
				if v != "" {
					state.Filters[columnKey] = append(state.Filters[columnKey], v)
				}
			}
			sort.Strings(state.Filters[columnKey])
		}
	}

	state.Sort = q.Get("sort")
	switch q.Get("dir") {
	case "asc":
		state.Dir = pipeline.Ascending
	case "desc":
		state.Dir = pipeline.Descending
	}
	if state.Sort == "" {
		state.Dir = pipeline.DirectionNone
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		state.Page = page
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size > 0 {
		state.PageSize = size
	}

	return state
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	clone := &Query{
		Path:         s.Path,
		Table:        s.Table,
		ColumnWidths: make(map[string]int),
		Filters:      make(map[string][]string),
		Sort:         s.Sort,
		Dir:          s.Dir,
		Page:         s.Page,
		PageSize:     s.PageSize,
	}

	if s.Columns != nil {
		clone.Columns = make([]string, len(s.Columns))
		copy(clone.Columns, s.Columns)
	}
	for colKey, width := range s.ColumnWidths {
		clone.ColumnWidths[colKey] = width
	}
	for colKey, values := range s.Filters {
		vs := make([]string, len(values))
		copy(vs, values)
		clone.Filters[colKey] = vs
	}

	return clone
}

// FilterState converts the URL filters to the pipeline's filter state.
func (s *Query) FilterState() pipeline.FilterState {
	state := make(pipeline.FilterState, len(s.Filters))
	for colKey, values := range s.Filters {
		vs := make([]string, len(values))
		copy(vs, values)
		state[colKey] = vs
	}
	return state
}

// SortState converts the URL sort to the pipeline's sort state.
func (s *Query) SortState() pipeline.SortState {
	return pipeline.SortState{Column: s.Sort, Direction: s.Dir}
}

// IsColumnVisible checks if a column is in the visible columns list.
// A nil list means everything is visible.
func (s *Query) IsColumnVisible(column string) bool {
	if s.Columns == nil {
		return true
	}
	for _, col := range s.Columns {
		if col == column {
			return true
		}
	}
	return false
}

// IsFilterValueActive checks if value is among the column's accepted values
func (s *Query) IsFilterValueActive(column, value string) bool {
	for _, v := range s.Filters[column] {
		if v == value {
			return true
		}
	}
	return false
}

// WithColumnToggled returns a URL with the column's visibility toggled.
// AllColumns is the full key list, needed to materialize the implicit
// "everything visible" state before removing one column from it.
func (s *Query) WithColumnToggled(column string, allColumns []string) safehtml.URL {
	newState := s.Clone()
	cols := newState.Columns
	if cols == nil {
		cols = make([]string, len(allColumns))
		copy(cols, allColumns)
	}

	found := false
	newColumns := make([]string, 0, len(cols))
	for _, col := range cols {
		if col == column {
			found = true
		} else {
			newColumns = append(newColumns, col)
		}
	}
	if !found {
		newColumns = append(newColumns, column)
	}
	newState.Columns = newColumns
	return newState.ToSafeURL()
}

// WithFilterValueToggled returns a URL with one accepted value of the
// column toggled. The page resets to 1: the old page index is meaningless
// against a re-filtered working set.
func (s *Query) WithFilterValueToggled(column, value string) safehtml.URL {
	newState := s.Clone()
	found := false
	newValues := make([]string, 0, len(s.Filters[column]))
	for _, v := range s.Filters[column] {
		if v == value {
			found = true
		} else {
			newValues = append(newValues, v)
		}
	}
	if !found {
		newValues = append(newValues, value)
		sort.Strings(newValues)
	}
	if len(newValues) == 0 {
		delete(newState.Filters, column)
	} else {
		newState.Filters[column] = newValues
	}
	newState.Page = 1
	return newState.ToSafeURL()
}

// WithSortToggled returns a URL with the column's sort cycled the way a
// header click does: ascending, descending, then none. Sorting a
// different column starts over at ascending. The page resets to 1.
func (s *Query) WithSortToggled(column string) safehtml.URL {
	newState := s.Clone()
	dir := pipeline.DirectionNone
	if s.Sort == column {
		dir = s.Dir
	}
	dir = dir.Next()
	if dir == pipeline.DirectionNone {
		newState.Sort = ""
	} else {
		newState.Sort = column
	}
	newState.Dir = dir
	newState.Page = 1
	return newState.ToSafeURL()
}

// WithPage returns a URL pointing at a different page
func (s *Query) WithPage(page int) safehtml.URL {
	newState := s.Clone()
	if page < 1 {
		page = 1
	}
	newState.Page = page
	return newState.ToSafeURL()
}

// WithPageSize returns a URL with a different page size, rewound to the
// first page
func (s *Query) WithPageSize(size int) safehtml.URL {
	newState := s.Clone()
	newState.PageSize = size
	newState.Page = 1
	return newState.ToSafeURL()
}

// WithColumnWidth returns a URL with the column resized to width pixels
func (s *Query) WithColumnWidth(column string, width int) safehtml.URL {
	newState := s.Clone()
	if width > 0 {
		newState.ColumnWidths[column] = width
	} else {
		delete(newState.ColumnWidths, column)
	}
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Table != "" {
		q.Set("table", s.Table)
	}

	// Add columns parameter (with widths if present); nil means the
	// parameter is omitted entirely
	if s.Columns != nil {
		columnStrs := make([]string, 0, len(s.Columns))
		for _, col := range s.Columns {
			if width, hasWidth := s.ColumnWidths[col]; hasWidth {
				columnStrs = append(columnStrs, col+":"+strconv.Itoa(width))
			} else {
				columnStrs = append(columnStrs, col)
			}
		}
		q.Set("columns", strings.Join(columnStrs, ","))
	}

	// Add filter parameters (format: filter:columnKey=value, repeated)
	for colKey, values := range s.Filters {
		for _, v := range values {
			if v != "" {
				q.Add("filter:"+colKey, v)
			}
		}
	}

	if s.Sort != "" && s.Dir != pipeline.DirectionNone {
		q.Set("sort", s.Sort)
		q.Set("dir", string(s.Dir))
	}

	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(s.PageSize))
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

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

// Package colspec defines column definitions for the grid and resolves the
// identity each column is keyed by in layout, filter and sort state.
package colspec

import (
	"strconv"

	"github.com/tablekit/tablekit/core/cells"
)

// Align is the horizontal alignment of a column's cells.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// FixedSide declares a column pinned to an edge of the scroll viewport.
// Pinning only takes visual effect while the viewport actually overflows
// horizontally; the layout engine computes offsets unconditionally.
type FixedSide string

const (
	FixedNone  FixedSide = ""
	FixedLeft  FixedSide = "left"
	FixedRight FixedSide = "right"
)

// FilterOption is one discrete value a column can be filtered by,
// with the label shown in the filter UI.
type FilterOption struct {
	Value string
	Label string
}

// Column describes one logical column of the grid.
//
// Identity resolution order is Key, then DataIndex, then the positional
// index within the column list. The identity must be stable across renders
// that drive the same logical column, because layout offsets and
// filter/sort state are keyed by it.
type Column struct {
	// Key is the explicit column identity. Optional.
	Key string
	// DataIndex is the dot-separated field path read from each row.
	// Optional for pure render columns.
	DataIndex string
	// Title is the header display name.
	Title string
	// Width is the declared column width. Numeric-looking values resolve
	// to pixels for offset math; anything else passes through verbatim to
	// rendering and counts as the default width for offsets.
	Width string
	// MinWidth is the declared minimum width, used as a width fallback
	// when it looks numeric.
	MinWidth string

	Align Align
	Fixed FixedSide

	// Sorter enables sorting with the generic value comparison.
	Sorter bool
	// SortFunc is a custom comparator returning <0, 0 or >0. When set it is
	// applied as-is for both directions; descending order is the
	// comparator's own business.
	SortFunc func(a, b cells.Row) int

	// Filters is the discrete value set offered by the filter UI.
	Filters []FilterOption
	// FilterFunc overrides the default string-form match. It reports
	// whether row matches one accepted filter value.
	FilterFunc func(value string, row cells.Row) bool

	// Render overrides the default cell text.
	Render func(value any, row cells.Row) string

	// Children declares header grouping. Child columns are declared but
	// rendered flat; multi-level headers are a documented limitation.
	Children []Column
}

// Set is a column list with identities resolved once. All downstream
// passes (layout, filter, sort, rendering) look columns up through a Set
// instead of re-deriving identities.
type Set struct {
	cols []Column
	ids  []string
	byID map[string]int
}

// Resolve computes the identity of every column in the list.
// Identity falls back from Key to DataIndex to the positional index.
func Resolve(cols []Column) *Set {
	s := &Set{
		cols: cols,
		ids:  make([]string, len(cols)),
		byID: make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		id := col.Key
		if id == "" {
			id = col.DataIndex
		}
		if id == "" {
			id = strconv.Itoa(i)
		}
		s.ids[i] = id
		// first occurrence wins on duplicate identities
		if _, exists := s.byID[id]; !exists {
			s.byID[id] = i
		}
	}
	return s
}

// Len returns the number of columns in the set.
func (s *Set) Len() int {
	return len(s.cols)
}

// Columns returns the underlying column list in order.
func (s *Set) Columns() []Column {
	return s.cols
}

// Identity returns the resolved identity of the column at position i.
func (s *Set) Identity(i int) string {
	return s.ids[i]
}

// Identities returns all resolved identities in column order.
func (s *Set) Identities() []string {
	return s.ids
}

// Column returns the column with the given identity.
func (s *Set) Column(id string) (Column, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Column{}, false
	}
	return s.cols[i], true
}

// Contains reports whether the set holds a column with the given identity.
func (s *Set) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Visible derives the subset of columns whose identity appears in
// visibleKeys, preserving set order and the already-resolved identities.
// Identities are not re-derived, so positionally-keyed columns keep their
// identity when columns before them are hidden. A nil visibleKeys means
// all columns are visible; an empty non-nil list yields zero columns.
func (s *Set) Visible(visibleKeys []string) *Set {
	if visibleKeys == nil {
		return s
	}
	wanted := make(map[string]bool, len(visibleKeys))
	for _, k := range visibleKeys {
		wanted[k] = true
	}
	sub := &Set{byID: make(map[string]int)}
	for i, col := range s.cols {
		id := s.ids[i]
		if !wanted[id] {
			continue
		}
		if _, exists := sub.byID[id]; !exists {
			sub.byID[id] = len(sub.cols)
		}
		sub.cols = append(sub.cols, col)
		sub.ids = append(sub.ids, id)
	}
	return sub
}

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

// Package pipeline transforms the raw row collection into the working set:
// per-column value filters followed by a single stable sort.
package pipeline

import (
	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
)

// FilterState maps a column identity to its set of accepted discrete
// values. A missing or empty entry imposes no constraint on that column.
// Filtered columns combine with AND; values within one column with OR.
type FilterState map[string][]string

// Clone creates a deep copy of the filter state.
func (s FilterState) Clone() FilterState {
	clone := make(FilterState, len(s))
	for id, values := range s {
		vs := make([]string, len(values))
		copy(vs, values)
		clone[id] = vs
	}
	return clone
}

// IsActive reports whether any column has a non-empty accepted-value set.
func (s FilterState) IsActive() bool {
	for _, values := range s {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// Filter applies the filter state to rows and returns the surviving rows
// in input order, always as a fresh slice. Columns are resolved against
// set, which should be the full column list: filters set on columns that
// were later hidden from view keep applying. A filter whose column cannot
// be resolved at all imposes no constraint.
func Filter(rows []cells.Row, state FilterState, set *colspec.Set) []cells.Row {
	type activeFilter struct {
		col    colspec.Column
		values []string
	}
	var active []activeFilter
	for id, values := range state {
		if len(values) == 0 {
			continue
		}
		col, ok := set.Column(id)
		if !ok {
			continue
		}
		active = append(active, activeFilter{col: col, values: values})
	}
	if len(active) == 0 {
		return cells.CloneRows(rows)
	}

	out := make([]cells.Row, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, f := range active {
			if !matchesAny(row, f.col, f.values) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// matchesAny reports whether the row matches at least one accepted value
// of the column, via the column's FilterFunc when present, else by
// comparing the string form of the resolved cell value.
func matchesAny(row cells.Row, col colspec.Column, values []string) bool {
	if col.FilterFunc != nil {
		for _, v := range values {
			if col.FilterFunc(v, row) {
				return true
			}
		}
		return false
	}
	text := cells.Text(row, col.DataIndex)
	for _, v := range values {
		if text == v {
			return true
		}
	}
	return false
}

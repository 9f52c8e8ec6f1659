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

package pipeline

import (
	"sort"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
)

// Direction is the sort direction of the single active sort.
type Direction string

const (
	DirectionNone Direction = ""
	Ascending     Direction = "asc"
	Descending    Direction = "desc"
)

// Next cycles the direction the way a header click does:
// none -> ascending -> descending -> none.
func (d Direction) Next() Direction {
	switch d {
	case Ascending:
		return Descending
	case Descending:
		return DirectionNone
	default:
		return Ascending
	}
}

// SortState is the single active sort: at most one column at a time.
type SortState struct {
	Column    string
	Direction Direction
}

// IsActive reports whether a sort is in effect.
func (s SortState) IsActive() bool {
	return s.Column != "" && s.Direction != DirectionNone
}

// Sort orders rows according to state. The sort is stable: rows comparing
// equal keep their original relative order, which keeps pagination of tied
// rows deterministic.
//
// No active sort, a sort column not found in set, or a column that
// declares no sort capability all return the input unchanged. A column's
// custom SortFunc is applied as-is; the contract does not invert a custom
// comparator for descending order. Default-sortable columns use the
// generic comparison, inverted for descending.
func Sort(rows []cells.Row, state SortState, set *colspec.Set) []cells.Row {
	if !state.IsActive() {
		return rows
	}
	col, ok := set.Column(state.Column)
	if !ok {
		return rows
	}

	switch {
	case col.SortFunc != nil:
		out := cells.CloneRows(rows)
		sort.SliceStable(out, func(i, j int) bool {
			return col.SortFunc(out[i], out[j]) < 0
		})
		return out
	case col.Sorter:
		desc := state.Direction == Descending
		out := cells.CloneRows(rows)
		sort.SliceStable(out, func(i, j int) bool {
			cmp := Compare(cells.Get(out[i], col.DataIndex), cells.Get(out[j], col.DataIndex))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
		return out
	default:
		return rows
	}
}

// Apply runs the full pipeline: filter against the complete column list,
// then sort against the visible column list (hidden columns are not sort
// eligible but their filters persist). The result is the working set.
func Apply(rows []cells.Row, filters FilterState, sortState SortState, all, visible *colspec.Set) []cells.Row {
	return Sort(Filter(rows, filters, all), sortState, visible)
}

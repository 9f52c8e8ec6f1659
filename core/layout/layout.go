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

// Package layout computes the flat ordered column layout of a grid and the
// cumulative pixel offsets used to position pinned columns.
package layout

import (
	"strconv"

	"github.com/tablekit/tablekit/core/colspec"
)

// DefaultColumnWidth is the pixel width assumed for columns that declare
// no usable numeric width.
const DefaultColumnWidth = 100

// SelectionColumnID is the synthetic identity of the row-selection column.
const SelectionColumnID = "__selection__"

// SelectionColumn describes the optional leading row-selection column.
type SelectionColumn struct {
	Width int
	Fixed colspec.FixedSide
}

// Item is one position of the computed layout.
type Item struct {
	Identity string
	// Width is the pixel width used for offset math.
	Width int
	// RawWidth is the declared width verbatim, preserved for rendering.
	// Empty when the column declared none.
	RawWidth string
	Fixed    colspec.FixedSide
	// Selection marks the synthetic selection column.
	Selection bool
}

// Layout is the flat ordered layout with dense offset arrays. LeftOffsets[i]
// is the cumulative width of fixed-left columns before position i;
// RightOffsets[i] the cumulative width of fixed-right columns after it.
// Both arrays carry one entry per position so any column can look up its
// offset unconditionally, fixed or not.
type Layout struct {
	Items        []Item
	LeftOffsets  []int
	RightOffsets []int
}

// Compute builds the layout for the visible column set, with the selection
// column (when present) leading. Offsets are computed unconditionally;
// whether pinning takes visual effect is gated by the scroll tracker.
func Compute(set *colspec.Set, sel *SelectionColumn) *Layout {
	n := set.Len()
	if sel != nil {
		n++
	}
	l := &Layout{
		Items:        make([]Item, 0, n),
		LeftOffsets:  make([]int, n),
		RightOffsets: make([]int, n),
	}

	if sel != nil {
		width := sel.Width
		if width <= 0 {
			width = DefaultSelectionWidth
		}
		l.Items = append(l.Items, Item{
			Identity:  SelectionColumnID,
			Width:     width,
			Fixed:     sel.Fixed,
			Selection: true,
		})
	}
	for i, col := range set.Columns() {
		l.Items = append(l.Items, Item{
			Identity: set.Identity(i),
			Width:    resolveWidth(col),
			RawWidth: col.Width,
			Fixed:    col.Fixed,
		})
	}

	// left offsets accumulate strictly left to right over fixed-left columns
	acc := 0
	for i, item := range l.Items {
		l.LeftOffsets[i] = acc
		if item.Fixed == colspec.FixedLeft {
			acc += item.Width
		}
	}

	// right offsets accumulate strictly right to left over fixed-right columns
	acc = 0
	for i := len(l.Items) - 1; i >= 0; i-- {
		l.RightOffsets[i] = acc
		if l.Items[i].Fixed == colspec.FixedRight {
			acc += l.Items[i].Width
		}
	}

	return l
}

// DefaultSelectionWidth is the pixel width of the selection column when the
// descriptor declares none.
const DefaultSelectionWidth = 40

// Offset returns the sticky offset for position i on the item's own fixed
// side, or 0 for unpinned items.
func (l *Layout) Offset(i int) int {
	switch l.Items[i].Fixed {
	case colspec.FixedLeft:
		return l.LeftOffsets[i]
	case colspec.FixedRight:
		return l.RightOffsets[i]
	default:
		return 0
	}
}

// HasFixed reports whether any layout position declares a fixed side.
func (l *Layout) HasFixed() bool {
	for _, item := range l.Items {
		if item.Fixed != colspec.FixedNone {
			return true
		}
	}
	return false
}

// resolveWidth resolves the pixel width of a column for offset math:
// an explicit numeric width, else a numeric-looking min-width, else the
// default. Non-numeric declared widths stay in Item.RawWidth for rendering.
func resolveWidth(col colspec.Column) int {
	if w, err := strconv.Atoi(col.Width); err == nil && w > 0 {
		return w
	}
	if w, err := strconv.Atoi(col.MinWidth); err == nil && w > 0 {
		return w
	}
	return DefaultColumnWidth
}

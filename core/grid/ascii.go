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

package grid

import (
	"fmt"
	"strings"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
)

// ToAscii returns a string representation of the current page with ASCII
// borders, for debugging and tests.
func (g *Grid) ToAscii() string {
	var sb strings.Builder
	cols := g.visible.Columns()
	widths := g.calculateColumnWidths()

	sep := func() {
		for _, w := range widths {
			sb.WriteString("+")
			sb.WriteString(strings.Repeat("-", w+2))
		}
		sb.WriteString("+\n")
	}

	sep()
	for i, col := range cols {
		sb.WriteString(fmt.Sprintf("| %-*s ", widths[i], col.Title))
	}
	sb.WriteString("|\n")
	sep()

	for _, row := range g.page {
		for i, col := range cols {
			sb.WriteString(fmt.Sprintf("| %-*s ", widths[i], cellText(row, col)))
		}
		sb.WriteString("|\n")
	}
	sep()

	return sb.String()
}

func cellText(row cells.Row, col colspec.Column) string {
	value := cells.Get(row, col.DataIndex)
	if col.Render != nil {
		return col.Render(value, row)
	}
	return cells.Stringify(value)
}

// calculateColumnWidths sizes each visible column to its widest cell or
// title on the current page.
func (g *Grid) calculateColumnWidths() []int {
	cols := g.visible.Columns()
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = len(col.Title)
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	for _, row := range g.page {
		for i, col := range cols {
			if n := len(cellText(row, col)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

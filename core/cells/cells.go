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

package cells

import (
	"fmt"
	"strings"
)

// Row is an opaque record keyed by string field paths. Nested records are
// stored as nested maps and addressed with dot-separated paths, e.g.
// "metrics.views" reads row["metrics"]["views"].
type Row map[string]any

// Get resolves fieldPath against row. It splits the path on "." and walks
// nested maps, returning nil at the first missing or non-map step.
// An empty fieldPath resolves to nil. Get never panics.
func Get(row Row, fieldPath string) any {
	if fieldPath == "" || row == nil {
		return nil
	}
	var current any = map[string]any(row)
	for _, part := range strings.Split(fieldPath, ".") {
		m := asMap(current)
		if m == nil {
			return nil
		}
		v, ok := m[part]
		if !ok {
			return nil
		}
		current = v
	}
	return current
}

// Text returns the string form of the cell at fieldPath, as used for
// filter matching and default rendering. A missing value yields "".
func Text(row Row, fieldPath string) string {
	return Stringify(Get(row, fieldPath))
}

// Stringify converts a cell value to its display string. nil yields "".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asMap normalizes the two map shapes a nested record can take.
func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case Row:
		return map[string]any(m)
	default:
		return nil
	}
}

// CloneRows returns a shallow copy of the row slice. Transformations in the
// pipeline operate on copies so caller-owned data is never reordered.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	return out
}

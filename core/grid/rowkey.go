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
	"strconv"

	"github.com/tablekit/tablekit/core/cells"
)

// keyFor extracts the identity of a row: the key function if configured,
// the configured key field otherwise (default "key"). The second return
// is false when the row carries no resolvable key.
func (g *Grid) keyFor(row cells.Row) (string, bool) {
	if g.cfg.RowKeyFunc != nil {
		key := g.cfg.RowKeyFunc(row)
		return key, key != ""
	}
	field := g.cfg.RowKey
	if field == "" {
		field = DefaultRowKey
	}
	v := cells.Get(row, field)
	if v == nil {
		return "", false
	}
	return cells.Stringify(v), true
}

// RenderKeys returns one rendering key per displayed row. Rows without a
// resolvable identity fall back to their page-positional index. The
// fallback is for rendering only: positional keys are not stable across
// reordering and never participate in selection.
func (g *Grid) RenderKeys() []string {
	keys := make([]string, len(g.page))
	for i, row := range g.page {
		if key, ok := g.keyFor(row); ok {
			keys[i] = key
			continue
		}
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// SelectableKey returns the row's selection identity, or "" with false
// when the row has none and therefore cannot be selected.
func (g *Grid) SelectableKey(row cells.Row) (string, bool) {
	return g.keyFor(row)
}

// rowsByKeys resolves a selected-key list back to row objects over the
// complete data source, not just the displayed page.
func (g *Grid) rowsByKeys(keys []string) []cells.Row {
	if len(keys) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	var out []cells.Row
	for _, row := range g.cfg.DataSource {
		if key, ok := g.keyFor(row); ok && wanted[key] {
			out = append(out, row)
		}
	}
	return out
}

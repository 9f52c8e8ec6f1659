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

package selection

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/core/cells"
)

// fullCollection simulates the complete row collection keyed by "key".
func fullCollection(n int) ([]cells.Row, func(keys []string) []cells.Row) {
	rows := make([]cells.Row, n)
	for i := range rows {
		rows[i] = cells.Row{"key": strconv.Itoa(i + 1)}
	}
	resolve := func(keys []string) []cells.Row {
		wanted := make(map[string]bool, len(keys))
		for _, k := range keys {
			wanted[k] = true
		}
		var out []cells.Row
		for _, r := range rows {
			if wanted[cells.Text(r, "key")] {
				out = append(out, r)
			}
		}
		return out
	}
	return rows, resolve
}

func pageKeys(from, to int) []string {
	var keys []string
	for i := from; i <= to; i++ {
		keys = append(keys, strconv.Itoa(i))
	}
	return keys
}

func TestToggleOneUncontrolled(t *testing.T) {
	_, resolve := fullCollection(5)
	tr := NewTracker(Config{}, resolve)

	tr.ToggleOne("2", true)
	tr.ToggleOne("4", true)
	assert.Equal(t, []string{"2", "4"}, tr.SelectedKeys())
	assert.True(t, tr.IsSelected("2"))

	tr.ToggleOne("2", false)
	assert.Equal(t, []string{"4"}, tr.SelectedKeys())
	assert.False(t, tr.IsSelected("2"))

	// toggling an already-selected key on again is idempotent
	tr.ToggleOne("4", true)
	assert.Equal(t, []string{"4"}, tr.SelectedKeys())
}

func TestSelectAllOnPagePreservesOtherPages(t *testing.T) {
	// keys {1,2,3} selected from page 1; selecting all of page 2
	// (keys 11..20) yields the union of both pages
	_, resolve := fullCollection(48)
	var gotKeys []string
	var gotRows []cells.Row
	tr := NewTracker(Config{OnChange: func(keys []string, rows []cells.Row) {
		gotKeys, gotRows = keys, rows
	}}, resolve)

	tr.ToggleAllOnPage([]string{"1", "2", "3"}, true)
	tr.ToggleAllOnPage(pageKeys(11, 20), true)

	require.Len(t, gotKeys, 13)
	assert.Equal(t, append([]string{"1", "2", "3"}, pageKeys(11, 20)...), gotKeys)
	assert.Len(t, gotRows, 13, "rows resolve over the complete collection")
}

func TestClearAllOnPageOnlyTouchesPageKeys(t *testing.T) {
	_, resolve := fullCollection(48)
	tr := NewTracker(Config{}, resolve)

	tr.ToggleAllOnPage(pageKeys(1, 10), true)
	tr.ToggleAllOnPage(pageKeys(11, 20), true)
	tr.ToggleAllOnPage(pageKeys(11, 20), false)

	assert.Equal(t, pageKeys(1, 10), tr.SelectedKeys(), "page 1 picks survive clearing page 2")
}

func TestRadioModeReplacesSelection(t *testing.T) {
	_, resolve := fullCollection(5)
	tr := NewTracker(Config{Mode: Radio}, resolve)

	tr.ToggleOne("1", true)
	assert.Equal(t, []string{"1"}, tr.SelectedKeys())

	tr.ToggleOne("3", true)
	assert.Equal(t, []string{"3"}, tr.SelectedKeys(), "radio replaces the whole selection")

	tr.ToggleOne("3", false)
	assert.Equal(t, []string{"3"}, tr.SelectedKeys(), "turning a radio off is not exposed")

	tr.ToggleAllOnPage(pageKeys(1, 5), true)
	assert.Equal(t, []string{"3"}, tr.SelectedKeys(), "select-all is a no-op for radios")
}

func TestControlledModeDoesNotRetainState(t *testing.T) {
	_, resolve := fullCollection(10)
	var reported []string
	controlled := []string{"1"}
	tr := NewTracker(Config{
		Keys: controlled,
		OnChange: func(keys []string, rows []cells.Row) {
			reported = keys
		},
	}, resolve)

	tr.ToggleOne("5", true)
	assert.Equal(t, []string{"1", "5"}, reported)
	// the tracker did not adopt the new set: the caller owns it
	assert.Equal(t, []string{"1"}, tr.SelectedKeys())
	assert.Equal(t, []string{"1"}, controlled, "caller slice is never mutated")

	// host round-trips the new keys
	tr.SetControlledKeys(reported)
	assert.Equal(t, []string{"1", "5"}, tr.SelectedKeys())
}

func TestControlledEmptyListIsStillControlled(t *testing.T) {
	_, resolve := fullCollection(3)
	var reported []string
	tr := NewTracker(Config{
		Keys:     []string{},
		OnChange: func(keys []string, rows []cells.Row) { reported = keys },
	}, resolve)

	tr.ToggleOne("2", true)
	assert.Equal(t, []string{"2"}, reported)
	assert.Empty(t, tr.SelectedKeys())
}

func TestUncontrolledCallbackFiresForObservability(t *testing.T) {
	_, resolve := fullCollection(3)
	calls := 0
	tr := NewTracker(Config{OnChange: func(keys []string, rows []cells.Row) { calls++ }}, resolve)

	tr.ToggleOne("1", true)
	tr.ToggleOne("1", false)
	assert.Equal(t, 2, calls)
}

func TestResolveNilIsSafe(t *testing.T) {
	tr := NewTracker(Config{OnChange: func(keys []string, rows []cells.Row) {
		assert.Nil(t, rows)
	}}, nil)
	tr.ToggleOne("1", true)
}

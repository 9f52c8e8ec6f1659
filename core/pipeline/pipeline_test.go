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
	"strings"
	"testing"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
)

func metricRows() []cells.Row {
	return []cells.Row{
		{"channel": "organic", "duration": 120, "region": "north"},
		{"channel": "paid", "duration": 95, "region": "south"},
		{"channel": "organic", "duration": 95, "region": "east"},
		{"channel": "referral", "duration": 240, "region": "north"},
		{"channel": "paid", "duration": 60, "region": "west"},
	}
}

func metricColumns() *colspec.Set {
	return colspec.Resolve([]colspec.Column{
		{Key: "channel", DataIndex: "channel", Sorter: true},
		{Key: "duration", DataIndex: "duration", Sorter: true},
		{Key: "region", DataIndex: "region"},
	})
}

func channels(rows []cells.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = cells.Text(r, "channel")
	}
	return out
}

func TestFilterSingleColumn(t *testing.T) {
	rows := metricRows()
	got := Filter(rows, FilterState{"channel": {"organic"}}, metricColumns())
	if len(got) != 2 {
		t.Fatalf("expected 2 organic rows, got %d", len(got))
	}
	for _, r := range got {
		if cells.Text(r, "channel") != "organic" {
			t.Errorf("unexpected row %v", r)
		}
	}
}

func TestFilterValuesCombineWithOr(t *testing.T) {
	rows := metricRows()
	got := Filter(rows, FilterState{"channel": {"organic", "paid"}}, metricColumns())
	if len(got) != 4 {
		t.Errorf("expected 4 rows for organic OR paid, got %d", len(got))
	}
}

func TestFilterColumnsCombineWithAnd(t *testing.T) {
	rows := metricRows()
	state := FilterState{
		"channel": {"organic", "paid"},
		"region":  {"north"},
	}
	got := Filter(rows, state, metricColumns())
	if len(got) != 1 {
		t.Fatalf("expected 1 row for (organic OR paid) AND north, got %d", len(got))
	}
	if cells.Text(got[0], "channel") != "organic" {
		t.Errorf("unexpected row %v", got[0])
	}
}

func TestFilterCountNeverExceedsInput(t *testing.T) {
	rows := metricRows()
	states := []FilterState{
		nil,
		{},
		{"channel": {}},
		{"channel": {"organic"}},
		{"channel": {"no-such-value"}},
		{"channel": {"organic"}, "region": {"north", "east"}},
	}
	for _, state := range states {
		got := Filter(rows, state, metricColumns())
		if len(got) > len(rows) {
			t.Errorf("filter %v grew the row count: %d > %d", state, len(got), len(rows))
		}
	}
}

func TestFilterEmptyStateKeepsEveryRow(t *testing.T) {
	rows := metricRows()
	for _, state := range []FilterState{nil, {}, {"channel": {}}} {
		got := Filter(rows, state, metricColumns())
		if len(got) != len(rows) {
			t.Errorf("state %v: expected all %d rows, got %d", state, len(rows), len(got))
		}
	}
}

func TestFilterRoundTripRestoresOriginalOrder(t *testing.T) {
	rows := metricRows()
	filtered := Filter(rows, FilterState{"channel": {"paid"}}, metricColumns())
	if len(filtered) != 2 {
		t.Fatalf("expected 2 paid rows, got %d", len(filtered))
	}
	// clearing the value set back to empty restores the exact original set
	restored := Filter(rows, FilterState{"channel": {}}, metricColumns())
	if len(restored) != len(rows) {
		t.Fatalf("expected %d rows after clearing, got %d", len(rows), len(restored))
	}
	for i := range rows {
		if cells.Text(restored[i], "channel") != cells.Text(rows[i], "channel") {
			t.Errorf("row %d out of order after round trip", i)
		}
	}
}

func TestFilterOnHiddenColumnStillApplies(t *testing.T) {
	all := metricColumns()
	rows := metricRows()
	// region hidden from view, but its filter was set earlier and persists
	state := FilterState{"region": {"north"}}
	got := Filter(rows, state, all)
	if len(got) != 2 {
		t.Errorf("expected 2 north rows with region hidden, got %d", len(got))
	}
}

func TestFilterUnresolvableColumnImposesNoConstraint(t *testing.T) {
	rows := metricRows()
	got := Filter(rows, FilterState{"removed": {"x"}}, metricColumns())
	if len(got) != len(rows) {
		t.Errorf("expected all rows when the filter column is gone, got %d", len(got))
	}
}

func TestFilterFuncOverridesStringMatch(t *testing.T) {
	set := colspec.Resolve([]colspec.Column{
		{
			Key:       "channel",
			DataIndex: "channel",
			FilterFunc: func(value string, row cells.Row) bool {
				return strings.HasPrefix(cells.Text(row, "channel"), value)
			},
		},
	})
	got := Filter(metricRows(), FilterState{"channel": {"org"}}, set)
	if len(got) != 2 {
		t.Errorf("expected 2 rows via prefix predicate, got %d", len(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	rows := metricRows()
	before := channels(rows)
	Filter(rows, FilterState{"channel": {"paid"}}, metricColumns())
	after := channels(rows)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("Filter mutated the caller's slice")
		}
	}
}

func TestSortAscendingDescendingReversal(t *testing.T) {
	rows := []cells.Row{
		{"channel": "d", "duration": 4},
		{"channel": "a", "duration": 1},
		{"channel": "c", "duration": 3},
		{"channel": "b", "duration": 2},
	}
	set := metricColumns()

	asc := Sort(rows, SortState{Column: "duration", Direction: Ascending}, set)
	desc := Sort(rows, SortState{Column: "duration", Direction: Descending}, set)

	for i := range asc {
		if cells.Text(asc[i], "channel") != cells.Text(desc[len(desc)-1-i], "channel") {
			t.Fatalf("descending is not the exact reversal of ascending: %v vs %v",
				channels(asc), channels(desc))
		}
	}
}

func TestSortStability(t *testing.T) {
	rows := []cells.Row{
		{"channel": "first", "duration": 95},
		{"channel": "second", "duration": 95},
		{"channel": "third", "duration": 95},
		{"channel": "small", "duration": 10},
	}
	set := metricColumns()

	asc := Sort(rows, SortState{Column: "duration", Direction: Ascending}, set)
	want := []string{"small", "first", "second", "third"}
	for i, w := range want {
		if cells.Text(asc[i], "channel") != w {
			t.Fatalf("ascending tie order broken: got %v", channels(asc))
		}
	}

	// ties keep original order in both directions
	desc := Sort(rows, SortState{Column: "duration", Direction: Descending}, set)
	want = []string{"first", "second", "third", "small"}
	for i, w := range want {
		if cells.Text(desc[i], "channel") != w {
			t.Fatalf("descending tie order broken: got %v", channels(desc))
		}
	}
}

func TestSortNoActiveSortIsNoOp(t *testing.T) {
	rows := metricRows()
	got := Sort(rows, SortState{}, metricColumns())
	if len(got) != len(rows) {
		t.Fatal("no-op sort changed the row count")
	}
	for i := range rows {
		if cells.Text(got[i], "channel") != cells.Text(rows[i], "channel") {
			t.Fatal("no-op sort reordered rows")
		}
	}
}

func TestSortUnresolvableColumnIsNoOp(t *testing.T) {
	rows := metricRows()
	got := Sort(rows, SortState{Column: "gone", Direction: Ascending}, metricColumns())
	for i := range rows {
		if cells.Text(got[i], "channel") != cells.Text(rows[i], "channel") {
			t.Fatal("sort on a missing column must return the input unchanged")
		}
	}
}

func TestSortNonSortableColumnIsNoOp(t *testing.T) {
	rows := metricRows()
	// region declares no sort capability
	got := Sort(rows, SortState{Column: "region", Direction: Ascending}, metricColumns())
	for i := range rows {
		if cells.Text(got[i], "region") != cells.Text(rows[i], "region") {
			t.Fatal("sort on a non-sortable column must return the input unchanged")
		}
	}
}

func TestSortCustomComparatorNotInverted(t *testing.T) {
	byLen := func(a, b cells.Row) int {
		return len(cells.Text(a, "channel")) - len(cells.Text(b, "channel"))
	}
	set := colspec.Resolve([]colspec.Column{
		{Key: "channel", DataIndex: "channel", SortFunc: byLen},
	})
	rows := []cells.Row{
		{"channel": "ccc"},
		{"channel": "a"},
		{"channel": "bb"},
	}

	asc := Sort(rows, SortState{Column: "channel", Direction: Ascending}, set)
	desc := Sort(rows, SortState{Column: "channel", Direction: Descending}, set)

	// the contract applies a custom comparator as-is in both directions
	for i := range asc {
		if cells.Text(asc[i], "channel") != cells.Text(desc[i], "channel") {
			t.Fatalf("custom comparator was inverted: %v vs %v", channels(asc), channels(desc))
		}
	}
	if cells.Text(asc[0], "channel") != "a" {
		t.Errorf("custom comparator order wrong: %v", channels(asc))
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	rows := metricRows()
	before := channels(rows)
	Sort(rows, SortState{Column: "channel", Direction: Ascending}, metricColumns())
	after := channels(rows)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("Sort mutated the caller's slice")
		}
	}
}

func TestApplySortsOnlyVisibleColumns(t *testing.T) {
	all := metricColumns()
	visible := all.Visible([]string{"channel"})
	rows := metricRows()

	// duration is hidden: not sort eligible, the sort is silently dropped
	got := Apply(rows, nil, SortState{Column: "duration", Direction: Ascending}, all, visible)
	for i := range rows {
		if cells.Text(got[i], "channel") != cells.Text(rows[i], "channel") {
			t.Fatal("hidden column must not be sort eligible")
		}
	}

	// but a filter on the hidden column still applies
	got = Apply(rows, FilterState{"duration": {"95"}}, SortState{}, all, visible)
	if len(got) != 2 {
		t.Errorf("expected 2 rows with duration=95, got %d", len(got))
	}
}

func TestDirectionNext(t *testing.T) {
	if DirectionNone.Next() != Ascending || Ascending.Next() != Descending || Descending.Next() != DirectionNone {
		t.Error("direction cycle must be none -> asc -> desc -> none")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"equal ints", 3, 3, 0},
		{"mixed numeric widths", int64(10), 2.5, 1},
		{"strings", "alpha", "beta", -1},
		{"bools", false, true, -1},
		{"nil before value", nil, "x", -1},
		{"value after nil", "x", nil, 1},
		{"both nil", nil, nil, 0},
		{"mixed types fall back to strings", 10, "9", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

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

package views

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
	"github.com/tablekit/tablekit/core/grid"
	"github.com/tablekit/tablekit/core/paging"
	"github.com/tablekit/tablekit/core/pipeline"
	"github.com/tablekit/tablekit/core/scrolling"
	"github.com/tablekit/tablekit/core/urlstate"
)

func testGrid(t *testing.T, q *urlstate.Query, rows int, scroll scrolling.Metrics) *grid.Grid {
	t.Helper()
	data := make([]cells.Row, rows)
	for i := range data {
		status := "active"
		if i%2 == 0 {
			status = "closed"
		}
		data[i] = cells.Row{
			"key":    strconv.Itoa(i + 1),
			"name":   "ch-" + strconv.Itoa(i+1),
			"status": status,
			"count":  i,
		}
	}
	cols := []colspec.Column{
		{Key: "name", DataIndex: "name", Title: "Name", Width: "120", Fixed: colspec.FixedLeft, Sorter: true},
		{Key: "status", DataIndex: "status", Title: "Status",
			Filters: []colspec.FilterOption{{Value: "active", Label: "Active"}, {Value: "closed", Label: "Closed"}}},
		{Key: "count", DataIndex: "count", Title: "Count", Sorter: true},
	}
	g := grid.New(grid.Config{
		Columns:        cols,
		DataSource:     data,
		Pagination:     paging.Uncontrolled(q.Page, q.PageSize),
		ColumnSettings: &grid.ColumnSettings{VisibleKeys: q.Columns},
		Filters:        q.FilterState(),
		Sort:           q.SortState(),
		Scroll:         scrolling.Dimensions{X: 1200},
	})
	t.Cleanup(g.Close)
	g.ObserveScroll(scroll)
	return g
}

func parseQuery(t *testing.T, raw string) *urlstate.Query {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return urlstate.NewQuery(u)
}

func TestBuildGridViewModelBasics(t *testing.T) {
	q := parseQuery(t, "/table?table=channels&pageSize=10")
	g := testGrid(t, q, 48, scrolling.Metrics{})
	vm := BuildGridViewModel(g, q, "Channels")

	assert.Equal(t, "Channels", vm.Title)
	assert.Equal(t, "channels", vm.Table)
	require.Len(t, vm.Columns, 3)
	assert.Len(t, vm.Rows, 10)
	assert.False(t, vm.IsEmpty)

	require.NotNil(t, vm.Pagination)
	assert.Equal(t, 1, vm.Pagination.Current)
	assert.Equal(t, 48, vm.Pagination.Total)
	assert.Equal(t, 5, vm.Pagination.TotalPages)
	assert.False(t, vm.Pagination.HasPrev)
	assert.True(t, vm.Pagination.HasNext)
}

func TestStickyRequiresActualOverflow(t *testing.T) {
	q := parseQuery(t, "/table?table=channels&pageSize=10")

	// container fits: declared-fixed column renders as a normal column
	fits := testGrid(t, q, 20, scrolling.Metrics{ScrollWidth: 800, ClientWidth: 800})
	vm := BuildGridViewModel(fits, q, "")
	assert.False(t, vm.HasHorizontalOverflow)
	assert.False(t, vm.Columns[0].Sticky)
	assert.Equal(t, colspec.FixedLeft, vm.Columns[0].Side, "declared side survives for styling hooks")

	// container overflows: stickiness activates
	overflow := testGrid(t, q, 20, scrolling.Metrics{ScrollWidth: 1200, ClientWidth: 800})
	vm2 := BuildGridViewModel(overflow, q, "")
	assert.True(t, vm2.HasHorizontalOverflow)
	assert.True(t, vm2.Columns[0].Sticky)
	assert.Equal(t, 0, vm2.Columns[0].Offset)
	assert.Equal(t, "left:0px;", vm2.Columns[0].StickyStyle.String(), "pinned header carries a typed offset declaration")
	assert.Equal(t, "left:0px;", vm2.Rows[0].Cells[0].StickyStyle.String())
	assert.True(t, vm2.ShowRightShadow)
	assert.False(t, vm2.ShowLeftShadow)
}

func TestHeaderCarriesSortAndFilterState(t *testing.T) {
	q := parseQuery(t, "/table?table=channels&pageSize=10&sort=count&dir=desc&filter:status=active")
	g := testGrid(t, q, 48, scrolling.Metrics{})
	vm := BuildGridViewModel(g, q, "")

	name, status, count := vm.Columns[0], vm.Columns[1], vm.Columns[2]

	assert.True(t, name.Sortable)
	assert.Equal(t, pipeline.DirectionNone, name.SortDir)

	assert.True(t, count.Sortable)
	assert.Equal(t, pipeline.Descending, count.SortDir)

	assert.False(t, status.Sortable)
	require.Len(t, status.Filters, 2)
	assert.True(t, status.Filters[0].Active)
	assert.False(t, status.Filters[1].Active)
	assert.True(t, status.FilterActive)
	assert.NotEmpty(t, status.Filters[1].ToggleURL.String())
}

func TestRowsReflectFilteredWorkingSet(t *testing.T) {
	q := parseQuery(t, "/table?table=channels&pageSize=100&filter:status=active")
	g := testGrid(t, q, 48, scrolling.Metrics{})
	vm := BuildGridViewModel(g, q, "")

	assert.Len(t, vm.Rows, 24)
	for _, row := range vm.Rows {
		assert.Equal(t, "active", row.Cells[1].Text)
	}
}

func TestEmptyStateAfterFilteringEverythingOut(t *testing.T) {
	q := parseQuery(t, "/table?table=channels&pageSize=10&filter:status=nonexistent")
	g := testGrid(t, q, 48, scrolling.Metrics{})
	vm := BuildGridViewModel(g, q, "")

	assert.True(t, vm.IsEmpty)
	assert.Equal(t, "No data", vm.EmptyText)
	require.NotNil(t, vm.Pagination)
	assert.Equal(t, 1, vm.Pagination.Current)
}

func TestSettingsListAllColumnsWithVisibility(t *testing.T) {
	q := parseQuery(t, "/table?table=channels&columns=name,count&pageSize=10")
	g := testGrid(t, q, 10, scrolling.Metrics{})
	vm := BuildGridViewModel(g, q, "")

	require.Len(t, vm.Settings, 3)
	byID := map[string]ColumnSettingVM{}
	for _, s := range vm.Settings {
		byID[s.Identity] = s
	}
	assert.True(t, byID["name"].Visible)
	assert.False(t, byID["status"].Visible)
	assert.True(t, byID["count"].Visible)

	// only the two visible columns produce header cells
	assert.Len(t, vm.Columns, 2)
}

func TestPaginationLinks(t *testing.T) {
	q := parseQuery(t, "/table?table=channels&page=3&pageSize=10")
	g := testGrid(t, q, 48, scrolling.Metrics{})
	vm := BuildGridViewModel(g, q, "")

	p := vm.Pagination
	require.NotNil(t, p)
	assert.Equal(t, 3, p.Current)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)
	require.Len(t, p.Pages, 5)
	assert.True(t, p.Pages[2].Current)
	assert.Contains(t, p.PrevURL.String(), "page=2")
	assert.Contains(t, p.NextURL.String(), "page=4")

	require.Len(t, p.SizeOptions, len(PageSizeOptions))
	assert.True(t, p.SizeOptions[0].Current) // pageSize=10
}

func TestBuildLandingViewModel(t *testing.T) {
	vm := BuildLandingViewModel("Tables", "/table", []TableSummary{
		{Name: "zeta", RowsN: 5, ColsN: 2},
		{Name: "alpha", RowsN: 48, ColsN: 3},
	})
	require.Len(t, vm.Tables, 2)
	assert.Equal(t, "alpha", vm.Tables[0].Name, "sorted by name")
	assert.Contains(t, vm.Tables[0].OpenURL.String(), "table=alpha")
}

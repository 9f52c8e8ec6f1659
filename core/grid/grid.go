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

// Package grid wires the table pipeline, layout engine, pagination,
// selection and scroll tracking into one orchestrated component with a
// unified change notification.
package grid

import (
	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
	"github.com/tablekit/tablekit/core/layout"
	"github.com/tablekit/tablekit/core/paging"
	"github.com/tablekit/tablekit/core/pipeline"
	"github.com/tablekit/tablekit/core/scrolling"
	"github.com/tablekit/tablekit/core/selection"
)

// DefaultRowKey is the field read for row identity when the config names
// no key field and no key function.
const DefaultRowKey = "key"

// Locale holds the literal label strings of the grid.
type Locale struct {
	EmptyText   string
	LoadingText string
}

// ColumnSettings is the caller-supplied visible-column control. AllColumns
// is the full definition list offered by the settings panel; VisibleKeys
// filters which of them participate in layout, sorting and rendering
// (nil means all visible). OnChange reports visibility edits.
type ColumnSettings struct {
	AllColumns  []colspec.Column
	VisibleKeys []string
	OnChange    func(visibleKeys []string)
}

// Extra is the trailing argument of the unified change notification.
type Extra struct {
	// CurrentDataSource holds the rows on the current page after the
	// interaction.
	CurrentDataSource []cells.Row
	// Action names the interaction that triggered the notification:
	// "filter", "sort", "paginate".
	Action string
}

// ChangeFunc is the unified change notification: pagination descriptor,
// full filter-state mapping, sort descriptor, and the displayed rows.
// Emitted exactly once per filter, sort or pagination interaction, after
// state has been committed.
type ChangeFunc func(p paging.Descriptor, filters pipeline.FilterState, sorter pipeline.SortState, extra Extra)

// Config is the grid construction configuration.
type Config struct {
	// Columns are the ordered column definitions.
	Columns []colspec.Column
	// DataSource is the full row collection (one page in server-side
	// pagination mode). Treated as immutable input.
	DataSource []cells.Row
	// RowKey names the field that identifies a row (default "key").
	RowKey string
	// RowKeyFunc overrides RowKey with a key-extraction function.
	RowKeyFunc func(cells.Row) string

	Pagination   paging.Config
	RowSelection *selection.Config

	// Presentation-only passthroughs.
	Loading  bool
	Bordered bool
	Size     string
	Title    string

	// Scroll declares the scrollable dimensions enabling overflow and
	// sticky behavior.
	Scroll scrolling.Dimensions
	// ScrollSource, when set, feeds the tracker with live container
	// metrics. The subscription is released by Close.
	ScrollSource scrolling.Source

	Locale Locale

	// ColumnSettings is the optional visible-column control.
	ColumnSettings *ColumnSettings

	// Filters and Sort seed the interaction state, e.g. from a URL.
	Filters pipeline.FilterState
	Sort    pipeline.SortState

	// OnChange is the unified change notification.
	OnChange ChangeFunc
}

// Grid is the table orchestrator. All state transitions run synchronously
// on the host's event loop; derived state is recomputed after every
// input change and interaction.
type Grid struct {
	cfg Config

	all     *colspec.Set // full definition list (filter resolution)
	visible *colspec.Set // visible subset (layout, sort, render)

	filters pipeline.FilterState
	sort    pipeline.SortState

	pager   *paging.Reconciler
	sel     *selection.Tracker
	tracker *scrolling.Tracker

	layout  *layout.Layout
	working []cells.Row // filtered + sorted
	page    []cells.Row // current display slice
}

// New builds a grid from the config and computes the initial derived
// state. No change notification fires for the initial computation.
func New(cfg Config) *Grid {
	g := &Grid{cfg: cfg}

	// clone so later filter interactions never mutate the caller's map
	g.filters = cfg.Filters.Clone()
	g.sort = cfg.Sort

	g.resolveColumns()

	g.pager = paging.NewReconciler(cfg.Pagination)

	if cfg.RowSelection != nil {
		g.sel = selection.NewTracker(*cfg.RowSelection, g.rowsByKeys)
	}

	g.tracker = scrolling.NewTracker(cfg.Scroll)
	g.tracker.Attach(cfg.ScrollSource)

	g.recompute()
	return g
}

// Close releases the scroll subscription. The grid must not be used
// afterwards.
func (g *Grid) Close() {
	g.tracker.Close()
}

// resolveColumns derives the full and visible column sets. Identity
// resolution runs once here and is reused by every downstream pass.
func (g *Grid) resolveColumns() {
	defs := g.cfg.Columns
	var visibleKeys []string
	if g.cfg.ColumnSettings != nil {
		if g.cfg.ColumnSettings.AllColumns != nil {
			defs = g.cfg.ColumnSettings.AllColumns
		}
		visibleKeys = g.cfg.ColumnSettings.VisibleKeys
	}
	g.all = colspec.Resolve(defs)
	g.visible = g.all.Visible(visibleKeys)
}

// recompute rebuilds the working set, the display slice and the layout
// from current inputs and interaction state.
func (g *Grid) recompute() {
	g.working = pipeline.Apply(g.cfg.DataSource, g.filters, g.sort, g.all, g.visible)

	if g.cfg.Pagination.Mode() == paging.ModeDisabled {
		g.page = g.working
	} else {
		effective := g.pager.Reconcile(len(g.working))
		g.page = paging.Slice(g.working, effective, g.pager.PageSize(), g.cfg.Pagination.IsServerSide())
	}

	g.layout = layout.Compute(g.visible, g.selectionColumn())
}

func (g *Grid) selectionColumn() *layout.SelectionColumn {
	if g.sel == nil {
		return nil
	}
	sc := g.sel.Config()
	return &layout.SelectionColumn{Width: sc.Width, Fixed: sc.Fixed}
}

// notify emits the unified change notification, after state has been
// committed, exactly once per interaction.
func (g *Grid) notify(action string) {
	if g.cfg.OnChange == nil {
		return
	}
	g.cfg.OnChange(
		g.PageDescriptor(),
		g.filters.Clone(),
		g.sort,
		Extra{CurrentDataSource: g.Rows(), Action: action},
	)
}

// ApplyFilter replaces the accepted-value set of one column. An empty or
// nil values list clears the filter. The interaction changes the working
// set, so pagination resets to the first page.
func (g *Grid) ApplyFilter(column string, values []string) {
	if len(values) == 0 {
		delete(g.filters, column)
	} else {
		vs := make([]string, len(values))
		copy(vs, values)
		g.filters[column] = vs
	}
	g.resetToFirstPage()
	g.recompute()
	g.notify("filter")
}

// ApplySort sets the single active sort. Direction none clears it.
// Pagination resets to the first page.
func (g *Grid) ApplySort(column string, dir pipeline.Direction) {
	if dir == pipeline.DirectionNone {
		g.sort = pipeline.SortState{}
	} else {
		g.sort = pipeline.SortState{Column: column, Direction: dir}
	}
	g.resetToFirstPage()
	g.recompute()
	g.notify("sort")
}

// ToggleSort cycles the sort on a column the way a header click does:
// ascending, then descending, then none. Sorting a different column
// starts over at ascending.
func (g *Grid) ToggleSort(column string) {
	dir := pipeline.DirectionNone
	if g.sort.Column == column {
		dir = g.sort.Direction
	}
	g.ApplySort(column, dir.Next())
}

// SetPage moves to the requested page.
func (g *Grid) SetPage(page int) {
	g.pager.SetPage(page, g.pager.PageSize())
	g.recompute()
	g.notify("paginate")
}

// SetPageSize changes the page size, keeping the current page request.
func (g *Grid) SetPageSize(size int) {
	g.pager.SetPage(g.pager.Current(), size)
	g.recompute()
	g.notify("paginate")
}

// ToggleRow toggles selection of a single row by key. Selection does not
// change the working set; it reports through the selection callback, not
// the unified notification.
func (g *Grid) ToggleRow(key string, selected bool) {
	if g.sel == nil {
		return
	}
	g.sel.ToggleOne(key, selected)
}

// ToggleAllOnPage selects or clears every selectable row on the current
// page. Rows without a resolvable key are excluded: an absent key never
// matches a real one.
func (g *Grid) ToggleAllOnPage(selected bool) {
	if g.sel == nil {
		return
	}
	var keys []string
	for _, row := range g.page {
		if key, ok := g.keyFor(row); ok {
			keys = append(keys, key)
		}
	}
	g.sel.ToggleAllOnPage(keys, selected)
}

// SetVisibleColumns updates the visible-key list, reports it through the
// column-settings callback, and recomputes. Hiding every column is legal
// and yields a table with zero data columns. Filters set on now-hidden
// columns keep applying.
func (g *Grid) SetVisibleColumns(keys []string) {
	if g.cfg.ColumnSettings == nil {
		g.cfg.ColumnSettings = &ColumnSettings{}
	}
	g.cfg.ColumnSettings.VisibleKeys = keys
	g.resolveColumns()
	g.recompute()
	if g.cfg.ColumnSettings.OnChange != nil {
		g.cfg.ColumnSettings.OnChange(keys)
	}
}

// ObserveScroll feeds a scroll container snapshot to the tracker. Scroll
// state is presentation-only: no change notification fires.
func (g *Grid) ObserveScroll(m scrolling.Metrics) {
	g.tracker.Observe(m)
}

// SetDataSource replaces the row collection, e.g. after a server-side
// refetch. Prop changes recompute derived state without a notification.
func (g *Grid) SetDataSource(rows []cells.Row) {
	g.cfg.DataSource = rows
	g.recompute()
}

// SetColumns replaces the column definitions.
func (g *Grid) SetColumns(cols []colspec.Column) {
	g.cfg.Columns = cols
	if g.cfg.ColumnSettings != nil && g.cfg.ColumnSettings.AllColumns != nil {
		g.cfg.ColumnSettings.AllColumns = cols
	}
	g.resolveColumns()
	g.recompute()
}

// resetToFirstPage rewinds pagination before a working-set-changing
// interaction: the previous page index is not meaningful against a
// differently filtered or ordered set.
func (g *Grid) resetToFirstPage() {
	if g.cfg.Pagination.Mode() == paging.ModeDisabled {
		return
	}
	g.pager.SetPage(1, g.pager.PageSize())
}

// Rows returns the rows currently displayed.
func (g *Grid) Rows() []cells.Row {
	return g.page
}

// WorkingSet returns the filtered and sorted row collection before
// pagination slicing.
func (g *Grid) WorkingSet() []cells.Row {
	return g.working
}

// Layout returns the computed column layout.
func (g *Grid) Layout() *layout.Layout {
	return g.layout
}

// ScrollState returns the derived scroll presentation state.
func (g *Grid) ScrollState() scrolling.State {
	return g.tracker.State()
}

// Filters returns a copy of the filter state.
func (g *Grid) Filters() pipeline.FilterState {
	return g.filters.Clone()
}

// Sort returns the active sort state.
func (g *Grid) Sort() pipeline.SortState {
	return g.sort
}

// PageDescriptor returns the pagination descriptor for the current
// working set, suitable for driving an external pagination control.
func (g *Grid) PageDescriptor() paging.Descriptor {
	return g.pager.Descriptor(len(g.working))
}

// Selection returns the selection tracker, or nil when row selection is
// not configured.
func (g *Grid) Selection() *selection.Tracker {
	return g.sel
}

// AllColumns returns the full column set.
func (g *Grid) AllColumns() *colspec.Set {
	return g.all
}

// VisibleColumns returns the visible column set.
func (g *Grid) VisibleColumns() *colspec.Set {
	return g.visible
}

// VisibleKeys returns the caller-supplied visible-key list, or nil when
// all columns are visible.
func (g *Grid) VisibleKeys() []string {
	if g.cfg.ColumnSettings == nil {
		return nil
	}
	return g.cfg.ColumnSettings.VisibleKeys
}

// Config returns the grid configuration.
func (g *Grid) Config() Config {
	return g.cfg
}

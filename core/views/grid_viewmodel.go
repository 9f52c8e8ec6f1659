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

// Package views formats grid state for template consumption. Every
// interactive element of the rendered page is a link built from the
// current URL state, so the server stays stateless between requests.
package views

import (
	"strconv"

	"github.com/google/safehtml"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
	"github.com/tablekit/tablekit/core/grid"
	"github.com/tablekit/tablekit/core/paging"
	"github.com/tablekit/tablekit/core/pipeline"
	"github.com/tablekit/tablekit/core/urlstate"
)

// GridViewModel contains the data from one grid formatted for template
// consumption.
type GridViewModel struct {
	Title   string
	Table   string
	Columns []ColumnVM
	Rows    []RowVM

	// Empty state
	IsEmpty   bool
	EmptyText string
	Loading   bool

	// Scroll-derived presentation state
	HasHorizontalOverflow bool
	ShowHeaderShadow      bool
	ShowLeftShadow        bool
	ShowRightShadow       bool

	Pagination *PaginationVM
	Settings   []ColumnSettingVM

	CurrentURL safehtml.URL
}

// ColumnVM is one header cell.
type ColumnVM struct {
	Identity string
	Title    string
	Width    int    // resolved pixel width for offset math
	RawWidth string // declared width verbatim, "" when none
	Align    colspec.Align

	// Sticky is true only while the container actually overflows;
	// a declared-fixed column in a fitting container renders normally.
	Sticky bool
	Side   colspec.FixedSide
	Offset int
	// StickyStyle is the typed left/right offset declaration the template
	// interpolates into the style attribute.
	StickyStyle safehtml.Style

	Sortable  bool
	SortDir   pipeline.Direction
	ToggleURL safehtml.URL

	Filters      []FilterVM
	FilterActive bool
}

// FilterVM is one entry of a column's filter menu.
type FilterVM struct {
	Value     string
	Label     string
	Active    bool
	ToggleURL safehtml.URL
}

// CellVM is one body cell.
type CellVM struct {
	Text        string
	Align       colspec.Align
	Sticky      bool
	Side        colspec.FixedSide
	Offset      int
	StickyStyle safehtml.Style
}

// RowVM is one body row.
type RowVM struct {
	Key   string
	Cells []CellVM
}

// PaginationVM drives the pagination control.
type PaginationVM struct {
	Current    int
	PageSize   int
	Total      int
	TotalPages int

	HasPrev bool
	HasNext bool
	PrevURL safehtml.URL
	NextURL safehtml.URL
	Pages   []PageVM

	SizeOptions []PageSizeVM
}

// PageVM is one numbered page link.
type PageVM struct {
	Number  int
	Current bool
	URL     safehtml.URL
}

// PageSizeVM is one page-size option.
type PageSizeVM struct {
	Size    int
	Current bool
	URL     safehtml.URL
}

// ColumnSettingVM is one entry of the column visibility panel.
type ColumnSettingVM struct {
	Identity  string
	Title     string
	Visible   bool
	ToggleURL safehtml.URL
}

// PageSizeOptions are the sizes offered by the page-size selector.
var PageSizeOptions = []int{10, 25, 50, 100}

// BuildGridViewModel creates a GridViewModel from a grid and the URL state
// that produced it.
func BuildGridViewModel(g *grid.Grid, q *urlstate.Query, title string) GridViewModel {
	vm := GridViewModel{
		Title:      title,
		Table:      q.Table,
		EmptyText:  g.Config().Locale.EmptyText,
		Loading:    g.Config().Loading,
		CurrentURL: q.ToSafeURL(),
	}
	if vm.EmptyText == "" {
		vm.EmptyText = "No data"
	}

	scroll := g.ScrollState()
	vm.HasHorizontalOverflow = scroll.HasHorizontalOverflow
	vm.ShowHeaderShadow = scroll.ShowHeaderShadow
	vm.ShowLeftShadow = scroll.ShowLeftShadow
	vm.ShowRightShadow = scroll.ShowRightShadow

	vm.Columns = buildColumns(g, q, scroll.HasHorizontalOverflow)
	vm.Rows = buildRows(g, scroll.HasHorizontalOverflow)
	vm.IsEmpty = len(vm.Rows) == 0

	if g.Config().Pagination.Mode() != paging.ModeDisabled {
		vm.Pagination = buildPagination(g, q)
	}

	vm.Settings = buildSettings(g, q)

	return vm
}

func buildColumns(g *grid.Grid, q *urlstate.Query, overflow bool) []ColumnVM {
	l := g.Layout()
	visible := g.VisibleColumns()
	sortState := g.Sort()

	// the layout may lead with the synthetic selection column; header
	// cells are built for data columns only, indexed by layout position
	out := make([]ColumnVM, 0, visible.Len())
	for pos, item := range l.Items {
		if item.Selection {
			continue
		}
		col, ok := visible.Column(item.Identity)
		if !ok {
			continue
		}
		cvm := ColumnVM{
			Identity: item.Identity,
			Title:    col.Title,
			Width:    item.Width,
			RawWidth: item.RawWidth,
			Align:    alignOf(col),
			Sticky:   overflow && item.Fixed != colspec.FixedNone,
			Side:     item.Fixed,
			Offset:   l.Offset(pos),
		}
		if cvm.Sticky {
			cvm.StickyStyle = stickyStyle(item.Fixed, cvm.Offset)
		}
		if col.Sorter || col.SortFunc != nil {
			cvm.Sortable = true
			cvm.ToggleURL = q.WithSortToggled(item.Identity)
			if sortState.Column == item.Identity {
				cvm.SortDir = sortState.Direction
			}
		}
		for _, opt := range col.Filters {
			active := q.IsFilterValueActive(item.Identity, opt.Value)
			cvm.Filters = append(cvm.Filters, FilterVM{
				Value:     opt.Value,
				Label:     opt.Label,
				Active:    active,
				ToggleURL: q.WithFilterValueToggled(item.Identity, opt.Value),
			})
			if active {
				cvm.FilterActive = true
			}
		}
		out = append(out, cvm)
	}
	return out
}

func buildRows(g *grid.Grid, overflow bool) []RowVM {
	l := g.Layout()
	visible := g.VisibleColumns()
	keys := g.RenderKeys()

	rows := make([]RowVM, 0, len(g.Rows()))
	for i, row := range g.Rows() {
		rvm := RowVM{Key: keys[i]}
		for pos, item := range l.Items {
			if item.Selection {
				continue
			}
			col, ok := visible.Column(item.Identity)
			if !ok {
				continue
			}
			cell := CellVM{
				Text:   renderCell(row, col),
				Align:  alignOf(col),
				Sticky: overflow && item.Fixed != colspec.FixedNone,
				Side:   item.Fixed,
				Offset: l.Offset(pos),
			}
			if cell.Sticky {
				cell.StickyStyle = stickyStyle(item.Fixed, cell.Offset)
			}
			rvm.Cells = append(rvm.Cells, cell)
		}
		rows = append(rows, rvm)
	}
	return rows
}

// stickyStyle builds the typed offset declaration for a pinned column.
// safehtml only accepts Style values in style-attribute context, so the
// offset cannot be interpolated as a bare number.
func stickyStyle(side colspec.FixedSide, offset int) safehtml.Style {
	px := strconv.Itoa(offset) + "px"
	if side == colspec.FixedRight {
		return safehtml.StyleFromProperties(safehtml.StyleProperties{Right: px})
	}
	return safehtml.StyleFromProperties(safehtml.StyleProperties{Left: px})
}

func alignOf(col colspec.Column) colspec.Align {
	if col.Align == "" {
		return colspec.AlignLeft
	}
	return col.Align
}

func renderCell(row cells.Row, col colspec.Column) string {
	value := cells.Get(row, col.DataIndex)
	if col.Render != nil {
		return col.Render(value, row)
	}
	return cells.Stringify(value)
}

func buildPagination(g *grid.Grid, q *urlstate.Query) *PaginationVM {
	d := g.PageDescriptor()
	vm := &PaginationVM{
		Current:    d.Current,
		PageSize:   d.PageSize,
		Total:      d.Total,
		TotalPages: d.TotalPages,
		HasPrev:    d.Current > 1,
		HasNext:    d.Current < d.TotalPages,
	}
	if vm.HasPrev {
		vm.PrevURL = q.WithPage(d.Current - 1)
	}
	if vm.HasNext {
		vm.NextURL = q.WithPage(d.Current + 1)
	}
	for page := 1; page <= d.TotalPages; page++ {
		vm.Pages = append(vm.Pages, PageVM{
			Number:  page,
			Current: page == d.Current,
			URL:     q.WithPage(page),
		})
	}
	for _, size := range PageSizeOptions {
		vm.SizeOptions = append(vm.SizeOptions, PageSizeVM{
			Size:    size,
			Current: size == d.PageSize,
			URL:     q.WithPageSize(size),
		})
	}
	return vm
}

func buildSettings(g *grid.Grid, q *urlstate.Query) []ColumnSettingVM {
	all := g.AllColumns()
	visible := g.VisibleColumns()
	allKeys := all.Identities()

	out := make([]ColumnSettingVM, 0, all.Len())
	for i, col := range all.Columns() {
		id := all.Identity(i)
		out = append(out, ColumnSettingVM{
			Identity:  id,
			Title:     col.Title,
			Visible:   visible.Contains(id),
			ToggleURL: q.WithColumnToggled(id, allKeys),
		})
	}
	return out
}

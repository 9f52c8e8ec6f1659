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

// Package paging computes the effective page against the working set and
// reconciles controlled and uncontrolled pagination state.
package paging

import (
	"github.com/tablekit/tablekit/core/cells"
)

// DefaultPageSize is used when neither the caller nor the defaults
// declare a page size.
const DefaultPageSize = 10

// Mode distinguishes who owns pagination state.
type Mode int

const (
	// ModeDisabled turns pagination off; the whole working set renders.
	ModeDisabled Mode = iota
	// ModeControlled: the caller owns current/pageSize; changes are
	// forwarded through the change handler and not stored as truth here.
	ModeControlled
	// ModeUncontrolled: internal state is authoritative.
	ModeUncontrolled
)

// Config is the tagged pagination variant:
// Disabled | Controlled{current, pageSize, onChange} |
// Uncontrolled{defaultCurrent, defaultPageSize}.
// Construct it with one of the constructors below.
type Config struct {
	mode            Mode
	current         int
	pageSize        int
	defaultCurrent  int
	defaultPageSize int
	serverSide      bool
	total           int
	onChange        func(page, pageSize int)
}

// Disabled returns the disabled pagination variant.
func Disabled() Config {
	return Config{mode: ModeDisabled}
}

// Controlled returns the controlled variant. The caller owns current and
// pageSize and receives every change through onChange.
func Controlled(current, pageSize int, onChange func(page, pageSize int)) Config {
	return Config{mode: ModeControlled, current: current, pageSize: pageSize, onChange: onChange}
}

// Uncontrolled returns the uncontrolled variant seeded with defaults.
func Uncontrolled(defaultCurrent, defaultPageSize int) Config {
	return Config{mode: ModeUncontrolled, defaultCurrent: defaultCurrent, defaultPageSize: defaultPageSize}
}

// ServerSide marks the config server-side: the row slice already holds
// exactly one externally fetched page and total is the externally known
// row count. No page clamping is performed in this mode; the caller owns
// the correctness of current.
func (c Config) ServerSide(total int) Config {
	c.serverSide = true
	c.total = total
	return c
}

// Mode returns the variant tag.
func (c Config) Mode() Mode {
	return c.mode
}

// IsServerSide reports whether rows are fetched one page at a time.
func (c Config) IsServerSide() bool {
	return c.serverSide
}

// Descriptor is the pagination shape handed to external pagination
// controls and carried in the unified change notification.
type Descriptor struct {
	Current    int
	PageSize   int
	Total      int
	TotalPages int
	OnChange   func(page, pageSize int)
}

// EffectivePage clamps the requested page against the working set:
// an empty set resolves to page 1; server-side mode passes the request
// through unclamped; otherwise the page is clamped into
// [1, ceil(workingSetSize/pageSize)].
func EffectivePage(requested, workingSetSize, pageSize int, serverSide bool) int {
	if workingSetSize == 0 {
		return 1
	}
	if serverSide {
		return requested
	}
	last := TotalPages(workingSetSize, pageSize)
	if requested > last {
		return last
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// TotalPages returns max(1, ceil(workingSetSize/pageSize)).
func TotalPages(workingSetSize, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (workingSetSize + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Slice cuts the effective page out of the working set. In server-side
// mode the input already is one page and passes through unchanged.
func Slice(rows []cells.Row, page, pageSize int, serverSide bool) []cells.Row {
	if serverSide {
		return rows
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := (page - 1) * pageSize
	if start < 0 {
		start = 0
	}
	if start >= len(rows) {
		return nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Reconciler manages pagination state for one grid. In uncontrolled mode
// the internal page/size are authoritative; in controlled mode they are a
// mirror kept as a fallback so a slow caller does not flash a stale page.
type Reconciler struct {
	cfg      Config
	page     int
	pageSize int
}

// NewReconciler seeds the reconciler from the config variant.
func NewReconciler(cfg Config) *Reconciler {
	r := &Reconciler{cfg: cfg, page: 1, pageSize: DefaultPageSize}
	switch cfg.mode {
	case ModeControlled:
		if cfg.current > 0 {
			r.page = cfg.current
		}
		if cfg.pageSize > 0 {
			r.pageSize = cfg.pageSize
		}
	case ModeUncontrolled:
		if cfg.defaultCurrent > 0 {
			r.page = cfg.defaultCurrent
		}
		if cfg.defaultPageSize > 0 {
			r.pageSize = cfg.defaultPageSize
		}
	}
	return r
}

// Config returns the reconciler's config variant.
func (r *Reconciler) Config() Config {
	return r.cfg
}

// Current returns the requested current page: the caller-supplied value in
// controlled mode (mirror as fallback), the internal state otherwise.
func (r *Reconciler) Current() int {
	if r.cfg.mode == ModeControlled && r.cfg.current > 0 {
		return r.cfg.current
	}
	return r.page
}

// PageSize returns the active page size.
func (r *Reconciler) PageSize() int {
	if r.cfg.mode == ModeControlled && r.cfg.pageSize > 0 {
		return r.cfg.pageSize
	}
	return r.pageSize
}

// SetPage records a page/size interaction. Uncontrolled state updates
// synchronously; controlled mode forwards to the caller's handler and only
// updates the internal mirror.
func (r *Reconciler) SetPage(page, pageSize int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = r.PageSize()
	}
	r.page = page
	r.pageSize = pageSize
	if r.cfg.mode == ModeControlled {
		if r.cfg.onChange != nil {
			r.cfg.onChange(page, pageSize)
		}
		return
	}
	// uncontrolled: the mirror is the authority, nothing else to do
}

// SetControlled refreshes the caller-owned values after a controlled
// update round-trips through the host.
func (r *Reconciler) SetControlled(current, pageSize int) {
	if r.cfg.mode != ModeControlled {
		return
	}
	if current > 0 {
		r.cfg.current = current
	}
	if pageSize > 0 {
		r.cfg.pageSize = pageSize
	}
}

// Reconcile computes the effective page for the current working set size,
// and, when the working set shrank below the current page, issues a
// corrective page update in uncontrolled mode only. Controlled mode
// leaves correction to the caller, since the reconciler must not override
// caller-owned state.
func (r *Reconciler) Reconcile(workingSetSize int) int {
	effective := EffectivePage(r.Current(), workingSetSize, r.PageSize(), r.cfg.serverSide)
	if r.cfg.mode == ModeUncontrolled && effective != r.page {
		r.page = effective
	}
	return effective
}

// Descriptor builds the externally consumable pagination descriptor for
// the given working set size.
func (r *Reconciler) Descriptor(workingSetSize int) Descriptor {
	total := workingSetSize
	if r.cfg.serverSide {
		total = r.cfg.total
	}
	size := r.PageSize()
	return Descriptor{
		Current:    EffectivePage(r.Current(), workingSetSize, size, r.cfg.serverSide),
		PageSize:   size,
		Total:      total,
		TotalPages: TotalPages(total, size),
		OnChange:   func(page, pageSize int) { r.SetPage(page, pageSize) },
	}
}

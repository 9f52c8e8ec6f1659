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

// Package selection tracks selected-row-key membership for the grid,
// in controlled or uncontrolled mode, as checkboxes or radios.
package selection

import (
	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
)

// Mode is the selection flavor.
type Mode int

const (
	// Checkbox allows multiple selected rows.
	Checkbox Mode = iota
	// Radio restricts the selection to at most one row.
	// ToggleAllOnPage is a no-op in this mode.
	Radio
)

// Config describes the row-selection column and behavior.
type Config struct {
	Mode Mode
	// Keys switches the tracker to controlled mode when non-nil: the
	// caller owns the selected key list and must feed every OnChange
	// result back in. A nil Keys means uncontrolled.
	Keys []string
	// OnChange receives the new key list and the corresponding rows,
	// resolved by key membership over the complete row collection.
	OnChange func(keys []string, rows []cells.Row)
	// Width is the selection column pixel width (default 40).
	Width int
	// Fixed pins the selection column.
	Fixed colspec.FixedSide
}

// Tracker maintains selected-row-key membership. Selections made on other
// pages are retained across page changes; "select all on page" only
// touches the keys of the currently displayed page.
type Tracker struct {
	cfg     Config
	keys    []string // uncontrolled authoritative state, insertion ordered
	resolve func(keys []string) []cells.Row
}

// NewTracker creates a tracker. resolve maps a key list back to row
// objects over the complete row collection (not just the visible page);
// it may be nil when no OnChange consumer needs rows.
func NewTracker(cfg Config, resolve func(keys []string) []cells.Row) *Tracker {
	t := &Tracker{cfg: cfg, resolve: resolve}
	if !t.controlled() {
		t.keys = append(t.keys, cfg.Keys...)
	}
	return t
}

// SetControlledKeys refreshes the caller-owned key list after a
// controlled update round-trips through the host.
func (t *Tracker) SetControlledKeys(keys []string) {
	if t.controlled() {
		t.cfg.Keys = keys
	}
}

// SelectedKeys returns the current selection: the caller-supplied keys in
// controlled mode, the internal set otherwise. The result is a copy.
func (t *Tracker) SelectedKeys() []string {
	base := t.keys
	if t.controlled() {
		base = t.cfg.Keys
	}
	out := make([]string, len(base))
	copy(out, base)
	return out
}

// IsSelected reports whether key is currently selected.
func (t *Tracker) IsSelected(key string) bool {
	for _, k := range t.current() {
		if k == key {
			return true
		}
	}
	return false
}

// ToggleOne turns the selection of a single row key on or off. In radio
// mode turning on replaces the whole selection with the toggled key;
// turning a radio off is not exposed as a distinct action and is ignored.
func (t *Tracker) ToggleOne(key string, selected bool) {
	var next []string
	switch {
	case t.cfg.Mode == Radio:
		if !selected {
			return
		}
		next = []string{key}
	case selected:
		next = add(t.current(), key)
	default:
		next = remove(t.current(), key)
	}
	t.commit(next)
}

// ToggleAllOnPage selects or clears exactly the keys present on the
// currently displayed page. The rest of the selection, prior picks from
// other pages, is preserved. A no-op in radio mode.
func (t *Tracker) ToggleAllOnPage(pageKeys []string, selected bool) {
	if t.cfg.Mode == Radio {
		return
	}
	next := t.current()
	if selected {
		for _, k := range pageKeys {
			next = add(next, k)
		}
	} else {
		for _, k := range pageKeys {
			next = remove(next, k)
		}
	}
	t.commit(next)
}

// Config returns the tracker's configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

func (t *Tracker) controlled() bool {
	return t.cfg.Keys != nil
}

func (t *Tracker) current() []string {
	if t.controlled() {
		// never hand the caller's slice to the mutation helpers
		out := make([]string, len(t.cfg.Keys))
		copy(out, t.cfg.Keys)
		return out
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// commit stores the new set (uncontrolled mode only; in controlled mode
// the tracker keeps no authoritative copy) and reports it through the
// change callback with the matching row objects.
func (t *Tracker) commit(next []string) {
	if !t.controlled() {
		t.keys = next
	}
	if t.cfg.OnChange != nil {
		var rows []cells.Row
		if t.resolve != nil {
			rows = t.resolve(next)
		}
		t.cfg.OnChange(next, rows)
	}
}

func add(keys []string, key string) []string {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}

func remove(keys []string, key string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

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

// Package scrolling derives sticky-column and shadow state from scroll
// container metrics reported by the embedding front-end.
package scrolling

// Metrics is a snapshot of the live scroll container, refreshed on scroll
// events and on container resize.
type Metrics struct {
	ScrollLeft  int
	ScrollTop   int
	ScrollWidth int
	ClientWidth int
}

// Dimensions are the declared scroll dimensions of the grid: X is the
// requested minimum content width enabling horizontal scroll, Y the
// requested visible height enabling vertical scroll. Zero disables the axis.
type Dimensions struct {
	X int
	Y int
}

// State is the derived presentation state. Fixed-column stickiness and the
// pinned-column shadows only activate while HasHorizontalOverflow is true;
// otherwise declared-fixed columns render as ordinary columns.
type State struct {
	HasHorizontalOverflow bool
	ShowHeaderShadow      bool
	ShowLeftShadow        bool
	ShowRightShadow       bool
}

// Derive recomputes the presentation state from a metrics snapshot.
func Derive(m Metrics, d Dimensions) State {
	overflowX := m.ScrollWidth - m.ClientWidth
	return State{
		HasHorizontalOverflow: d.X > 0 && m.ScrollWidth > 0 && m.ClientWidth > 0 && m.ScrollWidth > m.ClientWidth,
		ShowHeaderShadow:      d.Y > 0 && m.ScrollTop > 0,
		ShowLeftShadow:        m.ScrollLeft > 0,
		ShowRightShadow:       overflowX > 0 && m.ScrollLeft < overflowX,
	}
}

// Source is the subscription capability for scroll/resize observation.
// Subscribe registers fn for every metrics update and returns a cancel
// function releasing the subscription. Implementations bridge whatever
// event source the host front-end has.
type Source interface {
	Subscribe(fn func(Metrics)) (cancel func())
}

// Tracker holds the latest metrics snapshot and its derived state for one
// grid. It is single-threaded like the rest of the core: updates arrive
// from the host's event loop.
type Tracker struct {
	dims    Dimensions
	metrics Metrics
	state   State
	cancel  func()
}

// NewTracker creates a tracker for the declared scroll dimensions.
func NewTracker(d Dimensions) *Tracker {
	return &Tracker{dims: d}
}

// Attach subscribes the tracker to a metrics source. A previous
// subscription is released first, so at most one is live.
func (t *Tracker) Attach(src Source) {
	t.Close()
	if src == nil {
		return
	}
	t.cancel = src.Subscribe(func(m Metrics) {
		t.Observe(m)
	})
}

// Observe records a metrics snapshot and recomputes the derived state.
func (t *Tracker) Observe(m Metrics) State {
	t.metrics = m
	t.state = Derive(m, t.dims)
	return t.state
}

// State returns the last derived state.
func (t *Tracker) State() State {
	return t.state
}

// Metrics returns the last observed snapshot.
func (t *Tracker) Metrics() Metrics {
	return t.metrics
}

// Dimensions returns the declared scroll dimensions.
func (t *Tracker) Dimensions() Dimensions {
	return t.dims
}

// Close releases the current subscription, if any. Safe to call twice.
func (t *Tracker) Close() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// FanoutSource is a Source fed by explicit Emit calls. Hosts that receive
// scroll events through their own plumbing push snapshots into it; tests
// use it to simulate the container.
type FanoutSource struct {
	subs map[int]func(Metrics)
	next int
}

// NewFanoutSource creates an empty source.
func NewFanoutSource() *FanoutSource {
	return &FanoutSource{subs: make(map[int]func(Metrics))}
}

// Subscribe registers fn and returns its cancel function.
func (s *FanoutSource) Subscribe(fn func(Metrics)) func() {
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

// Emit delivers a metrics snapshot to all subscribers.
func (s *FanoutSource) Emit(m Metrics) {
	for _, fn := range s.subs {
		fn(m)
	}
}

// Len returns the number of live subscriptions.
func (s *FanoutSource) Len() int {
	return len(s.subs)
}

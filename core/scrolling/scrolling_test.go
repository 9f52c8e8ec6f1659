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

package scrolling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		d    Dimensions
		want State
	}{
		{
			name: "no overflow, no scroll requested",
			m:    Metrics{ScrollWidth: 500, ClientWidth: 800},
			d:    Dimensions{},
			want: State{},
		},
		{
			name: "horizontal overflow at origin",
			m:    Metrics{ScrollWidth: 1200, ClientWidth: 800},
			d:    Dimensions{X: 1200},
			want: State{HasHorizontalOverflow: true, ShowRightShadow: true},
		},
		{
			name: "scrolled into the middle",
			m:    Metrics{ScrollLeft: 200, ScrollWidth: 1200, ClientWidth: 800},
			d:    Dimensions{X: 1200},
			want: State{HasHorizontalOverflow: true, ShowLeftShadow: true, ShowRightShadow: true},
		},
		{
			name: "scrolled to the far right",
			m:    Metrics{ScrollLeft: 400, ScrollWidth: 1200, ClientWidth: 800},
			d:    Dimensions{X: 1200},
			want: State{HasHorizontalOverflow: true, ShowLeftShadow: true},
		},
		{
			name: "content narrower than container",
			m:    Metrics{ScrollWidth: 700, ClientWidth: 800},
			d:    Dimensions{X: 700},
			want: State{},
		},
		{
			name: "overflow requested but metrics not yet measured",
			m:    Metrics{},
			d:    Dimensions{X: 1200},
			want: State{},
		},
		{
			name: "vertical scroll shows header shadow",
			m:    Metrics{ScrollTop: 12, ScrollWidth: 500, ClientWidth: 800},
			d:    Dimensions{Y: 300},
			want: State{ShowHeaderShadow: true},
		},
		{
			name: "scrollTop without vertical scroll requested",
			m:    Metrics{ScrollTop: 12},
			d:    Dimensions{},
			want: State{},
		},
		{
			name: "horizontal overflow without X requested stays inactive",
			m:    Metrics{ScrollWidth: 1200, ClientWidth: 800},
			d:    Dimensions{Y: 300},
			want: State{ShowRightShadow: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.m, tt.d))
		})
	}
}

func TestTrackerObserve(t *testing.T) {
	tr := NewTracker(Dimensions{X: 1200, Y: 300})
	assert.Equal(t, State{}, tr.State())

	st := tr.Observe(Metrics{ScrollLeft: 10, ScrollTop: 5, ScrollWidth: 1200, ClientWidth: 800})
	assert.True(t, st.HasHorizontalOverflow)
	assert.True(t, st.ShowHeaderShadow)
	assert.True(t, st.ShowLeftShadow)
	assert.Equal(t, st, tr.State())
	assert.Equal(t, 10, tr.Metrics().ScrollLeft)
}

func TestTrackerAttachAndClose(t *testing.T) {
	src := NewFanoutSource()
	tr := NewTracker(Dimensions{X: 1000})

	tr.Attach(src)
	assert.Equal(t, 1, src.Len())

	src.Emit(Metrics{ScrollWidth: 1000, ClientWidth: 600})
	assert.True(t, tr.State().HasHorizontalOverflow)

	// re-attach releases the previous subscription
	tr.Attach(src)
	assert.Equal(t, 1, src.Len())

	tr.Close()
	assert.Equal(t, 0, src.Len(), "Close must release the subscription")
	tr.Close() // idempotent

	src.Emit(Metrics{ScrollLeft: 50, ScrollWidth: 1000, ClientWidth: 600})
	assert.False(t, tr.State().ShowLeftShadow, "no updates after Close")
}

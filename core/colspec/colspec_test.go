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

package colspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIdentityFallback(t *testing.T) {
	set := Resolve([]Column{
		{Key: "ch", DataIndex: "channel"}, // explicit key wins
		{DataIndex: "duration"},           // field path fallback
		{Title: "Actions"},                // positional fallback
	})

	assert.Equal(t, []string{"ch", "duration", "2"}, set.Identities())

	col, ok := set.Column("duration")
	require.True(t, ok)
	assert.Equal(t, "duration", col.DataIndex)

	_, ok = set.Column("channel")
	assert.False(t, ok, "DataIndex must not resolve when Key is set")
}

func TestResolveDuplicateIdentityFirstWins(t *testing.T) {
	set := Resolve([]Column{
		{Key: "dup", Title: "first"},
		{Key: "dup", Title: "second"},
	})
	col, ok := set.Column("dup")
	require.True(t, ok)
	assert.Equal(t, "first", col.Title)
}

func TestVisibleSubset(t *testing.T) {
	set := Resolve([]Column{
		{Key: "a"},
		{DataIndex: "b"},
		{Title: "positional"}, // identity "2"
		{Key: "d"},
	})

	sub := set.Visible([]string{"d", "2", "a"})
	// order follows the set, not the visible list
	assert.Equal(t, []string{"a", "2", "d"}, sub.Identities())

	// positional identity survives even though the position shifted
	assert.True(t, sub.Contains("2"))
	assert.False(t, sub.Contains("b"))
}

func TestVisibleNilMeansAll(t *testing.T) {
	set := Resolve([]Column{{Key: "a"}, {Key: "b"}})
	assert.Same(t, set, set.Visible(nil))
}

func TestVisibleEmptyYieldsNoColumns(t *testing.T) {
	set := Resolve([]Column{{Key: "a"}, {Key: "b"}})
	sub := set.Visible([]string{})
	assert.Equal(t, 0, sub.Len())
}

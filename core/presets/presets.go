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

// Package presets stores named grid views (visible columns, filters,
// sort, page size) so a configured view can be reopened later.
// Storage failures are reported to the caller but never break the grid:
// a view that cannot be saved still renders.
package presets

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/tablekit/tablekit/core/pipeline"
)

// Preset is one saved view of a table.
type Preset struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Table     string              `json:"table"`
	Columns   []string            `json:"columns,omitempty"`
	Filters   map[string][]string `json:"filters,omitempty"`
	Sort      string              `json:"sort,omitempty"`
	Dir       pipeline.Direction  `json:"dir,omitempty"`
	PageSize  int                 `json:"pageSize,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Store persists presets.
type Store interface {
	// Save stores the preset, assigning an ID when it has none, and
	// returns the stored copy.
	Save(p Preset) (Preset, error)
	// Get returns the preset with the given ID.
	Get(id string) (Preset, bool, error)
	// List returns the presets saved for a table, newest first.
	List(table string) ([]Preset, error)
	// Delete removes a preset. Deleting an unknown ID is not an error.
	Delete(id string) error
}

// MemoryStore is the in-process Store used by the demo server.
type MemoryStore struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{presets: make(map[string]Preset)}
}

// Save stores the preset, assigning a fresh ID when it has none.
func (s *MemoryStore) Save(p Preset) (Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = xid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.presets[p.ID] = p
	return p, nil
}

// Get returns the preset with the given ID.
func (s *MemoryStore) Get(id string) (Preset, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presets[id]
	return p, ok, nil
}

// List returns the presets for a table, newest first.
func (s *MemoryStore) List(table string) ([]Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Preset
	for _, p := range s.presets {
		if p.Table == table {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a preset.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.presets, id)
	return nil
}

// Encode serializes a preset for transport or file storage.
func Encode(p Preset) ([]byte, error) {
	return json.Marshal(p)
}

// Decode deserializes a preset.
func Decode(data []byte) (Preset, error) {
	var p Preset
	err := json.Unmarshal(data, &p)
	return p, err
}

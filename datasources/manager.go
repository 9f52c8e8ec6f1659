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

package datasources

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/tablekit/tablekit/logger"
)

// pathConfigKeys are loader config entries that hold file paths and are
// resolved against the manager's base directory when relative.
var pathConfigKeys = []string{"file_path", "proto_file", "descriptor_set"}

// Manager registers loaders, holds source definitions, and caches loaded
// tables. Tables load lazily on first access.
type Manager struct {
	mu      sync.RWMutex
	loaders map[string]Loader
	sources map[string]Source
	tables  map[string]*Table
	baseDir string
	log     logger.Logger
}

// NewManager creates a manager. Relative paths in source configs are
// resolved against baseDir.
func NewManager(baseDir string) *Manager {
	return &Manager{
		loaders: make(map[string]Loader),
		sources: make(map[string]Source),
		tables:  make(map[string]*Table),
		baseDir: baseDir,
		log:     logger.New("datasources"),
	}
}

// RegisterLoader adds a loader. A loader registered for an existing
// source type replaces the previous one.
func (m *Manager) RegisterLoader(l Loader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[l.SourceType()] = l
}

// AddSource registers a source definition. The table is not loaded until
// first requested.
func (m *Manager) AddSource(src Source) error {
	if src.Name == "" {
		return fmt.Errorf("data source has no name")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loaders[src.SourceType]; !ok {
		return fmt.Errorf("data source %q: no loader for source type %q", src.Name, src.SourceType)
	}
	m.sources[src.Name] = src
	return nil
}

// AddTable registers an already-loaded table, bypassing loaders. Used for
// in-process data such as the demo data set.
func (m *Manager) AddTable(t *Table) error {
	if t.Name == "" {
		return fmt.Errorf("table has no name")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[t.Name] = t
	return nil
}

// Load returns the named table, loading it through its source's loader on
// first access.
func (m *Manager) Load(ctx context.Context, name string) (*Table, error) {
	m.mu.RLock()
	if t, ok := m.tables[name]; ok {
		m.mu.RUnlock()
		return t, nil
	}
	src, ok := m.sources[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}
	return m.loadSource(ctx, src)
}

func (m *Manager) loadSource(ctx context.Context, src Source) (*Table, error) {
	m.mu.RLock()
	loader := m.loaders[src.SourceType]
	m.mu.RUnlock()
	if loader == nil {
		return nil, fmt.Errorf("data source %q: no loader for source type %q", src.Name, src.SourceType)
	}

	t, err := loader.Load(ctx, m.resolveConfigPaths(src.Config))
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", src.Name, err)
	}
	t.Name = src.Name
	m.log.Info("loaded table", "table", src.Name, "type", src.SourceType, "rows", len(t.Rows))

	m.mu.Lock()
	m.tables[src.Name] = t
	m.mu.Unlock()
	return t, nil
}

// LoadAll eagerly loads every registered source, collecting per-source
// failures. Sources that load successfully stay loaded even when others
// fail.
func (m *Manager) LoadAll(ctx context.Context) error {
	m.mu.RLock()
	srcs := make([]Source, 0, len(m.sources))
	for _, src := range m.sources {
		srcs = append(srcs, src)
	}
	m.mu.RUnlock()

	var errs *multierror.Error
	for _, src := range srcs {
		m.mu.RLock()
		_, loaded := m.tables[src.Name]
		m.mu.RUnlock()
		if loaded {
			continue
		}
		if _, err := m.loadSource(ctx, src); err != nil {
			m.log.Error("load failed", err)
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// Invalidate drops the cached table so the next Load re-reads the source.
// Tables added directly with AddTable have no source and are removed for
// good.
func (m *Manager) Invalidate(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, name)
}

// Names returns the names of all known tables and sources, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var names []string
	for name := range m.tables {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range m.sources {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// resolveConfigPaths returns a copy of config with relative file paths
// resolved against the manager's base directory.
func (m *Manager) resolveConfigPaths(config map[string]string) map[string]string {
	if m.baseDir == "" {
		return config
	}
	resolved := make(map[string]string, len(config))
	for k, v := range config {
		resolved[k] = v
	}
	for _, key := range pathConfigKeys {
		if p, ok := resolved[key]; ok && p != "" && !filepath.IsAbs(p) {
			resolved[key] = filepath.Join(m.baseDir, p)
		}
	}
	return resolved
}

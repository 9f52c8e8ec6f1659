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

// Package datasources provides a unified interface for loading grid data
// from various sources (CSV files, textproto files, in-process data).
// Loaders are registered by source type; the manager caches loaded tables
// and serves them to the grid server.
package datasources

import (
	"context"
	"strings"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
)

// Table is a loaded data set ready for the grid: column definitions plus
// the row collection.
type Table struct {
	Name    string
	Columns []colspec.Column
	Rows    []cells.Row
}

// Loader is the interface all data source loaders implement. Built-in
// loaders exist for "csv" and "textproto"; additional loaders can be
// registered for databases, APIs or custom formats.
type Loader interface {
	// SourceType returns the type identifier used in source definitions
	// (e.g. "csv", "textproto").
	SourceType() string

	// DiscoverSchema returns the column definitions of the source without
	// materializing the rows.
	DiscoverSchema(ctx context.Context, config map[string]string) ([]colspec.Column, error)

	// Load retrieves the data described by config and returns a Table.
	Load(ctx context.Context, config map[string]string) (*Table, error)
}

// Source describes one configured data source.
type Source struct {
	// Name is the table name the source is served under.
	Name string
	// SourceType selects the registered loader.
	SourceType string
	// Config is loader-specific (file paths, message names, delimiters).
	Config map[string]string
}

// displayName derives a header title from a column name:
// "customer_id" becomes "Customer Id".
func displayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

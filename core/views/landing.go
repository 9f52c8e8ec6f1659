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

package views

import (
	"sort"

	"github.com/google/safehtml"

	"github.com/tablekit/tablekit/core/urlstate"
)

// LandingViewModel lists the tables the server can display.
type LandingViewModel struct {
	Title  string
	Tables []TableLinkVM
}

// TableLinkVM is one table entry on the landing page.
type TableLinkVM struct {
	Name    string
	RowsN   int
	ColsN   int
	OpenURL safehtml.URL
}

// TableSummary is the minimal shape the landing page needs per table.
type TableSummary struct {
	Name    string
	RowsN   int
	ColsN   int
}

// BuildLandingViewModel creates the landing page model, tables sorted by
// name.
func BuildLandingViewModel(title, tablePath string, tables []TableSummary) LandingViewModel {
	vm := LandingViewModel{Title: title}
	for _, t := range tables {
		q := &urlstate.Query{Path: tablePath, Table: t.Name, Page: 1}
		vm.Tables = append(vm.Tables, TableLinkVM{
			Name:    t.Name,
			RowsN:   t.RowsN,
			ColsN:   t.ColsN,
			OpenURL: q.ToSafeURL(),
		})
	}
	sort.Slice(vm.Tables, func(i, j int) bool {
		return vm.Tables[i].Name < vm.Tables[j].Name
	})
	return vm
}

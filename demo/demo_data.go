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

// Package demo builds the sample tables served by the demo server.
package demo

import (
	"fmt"
	"time"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
	"github.com/tablekit/tablekit/datasources"
)

var regions = []string{"us-east", "us-west", "europe", "asia"}
var owners = []string{"ada", "grace", "linus", "ken", "rob"}

// ChannelsTable builds a mid-sized table exercising filters, sorting and
// pagination.
func ChannelsTable() *datasources.Table {
	cols := []colspec.Column{
		{Key: "name", DataIndex: "name", Title: "Name", Width: "200", Fixed: colspec.FixedLeft, Sorter: true},
		{Key: "status", DataIndex: "status", Title: "Status", Width: "120", Filters: []colspec.FilterOption{
			{Value: "active", Label: "Active"},
			{Value: "paused", Label: "Paused"},
			{Value: "closed", Label: "Closed"},
		}},
		{Key: "region", DataIndex: "region", Title: "Region", Width: "140", Filters: []colspec.FilterOption{
			{Value: "us-east", Label: "US East"},
			{Value: "us-west", Label: "US West"},
			{Value: "europe", Label: "Europe"},
			{Value: "asia", Label: "Asia"},
		}},
		{Key: "owner", DataIndex: "owner", Title: "Owner", Width: "140", Sorter: true},
		{Key: "subscribers", DataIndex: "subscribers", Title: "Subscribers", Width: "140", Align: colspec.AlignRight, Sorter: true},
		{Key: "throughput", DataIndex: "throughput", Title: "Throughput", Width: "140", Align: colspec.AlignRight, Sorter: true},
		{Key: "updated", DataIndex: "updated", Title: "Updated", Width: "180", Sorter: true},
	}

	statuses := []string{"active", "active", "paused", "closed"}
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := make([]cells.Row, 0, 48)
	for i := 1; i <= 48; i++ {
		rows = append(rows, cells.Row{
			"key":         fmt.Sprintf("ch-%d", i),
			"name":        fmt.Sprintf("Channel %d", i),
			"status":      statuses[i%len(statuses)],
			"region":      regions[i%len(regions)],
			"owner":       owners[i%len(owners)],
			"subscribers": int64(i * 137),
			"throughput":  float64(i) * 1.75,
			"updated":     base.Add(time.Duration(i) * 7 * time.Hour).Format("2006-01-02 15:04"),
		})
	}

	return &datasources.Table{Name: "channels", Columns: cols, Rows: rows}
}

// IncidentsTable builds a wide table for the horizontal scroll and pinned
// column demo: enough columns that a normal viewport overflows.
func IncidentsTable() *datasources.Table {
	cols := []colspec.Column{
		{Key: "id", DataIndex: "id", Title: "ID", Width: "110", Fixed: colspec.FixedLeft, Sorter: true},
		{Key: "title", DataIndex: "title", Title: "Title", Width: "240", Sorter: true},
		{Key: "severity", DataIndex: "severity", Title: "Severity", Width: "110", Filters: []colspec.FilterOption{
			{Value: "critical", Label: "Critical"},
			{Value: "major", Label: "Major"},
			{Value: "minor", Label: "Minor"},
		}},
		{Key: "service", DataIndex: "service", Title: "Service", Width: "160"},
		{Key: "region", DataIndex: "region", Title: "Region", Width: "140"},
		{Key: "reporter", DataIndex: "reporter", Title: "Reporter", Width: "140"},
		{Key: "assignee", DataIndex: "assignee", Title: "Assignee", Width: "140", Sorter: true},
		{Key: "opened", DataIndex: "opened", Title: "Opened", Width: "170", Sorter: true},
		{Key: "age_hours", DataIndex: "age_hours", Title: "Age (h)", Width: "110", Align: colspec.AlignRight, Sorter: true},
		{Key: "state", DataIndex: "state", Title: "State", Width: "120", Fixed: colspec.FixedRight, Filters: []colspec.FilterOption{
			{Value: "open", Label: "Open"},
			{Value: "mitigated", Label: "Mitigated"},
			{Value: "resolved", Label: "Resolved"},
		}},
	}

	severities := []string{"minor", "major", "minor", "critical"}
	states := []string{"open", "mitigated", "resolved"}
	services := []string{"ingest", "query", "billing", "auth", "storage"}
	base := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	rows := make([]cells.Row, 0, 60)
	for i := 1; i <= 60; i++ {
		rows = append(rows, cells.Row{
			"key":       fmt.Sprintf("inc-%d", i),
			"id":        fmt.Sprintf("INC-%04d", i),
			"title":     fmt.Sprintf("Elevated error rate in %s", services[i%len(services)]),
			"severity":  severities[i%len(severities)],
			"service":   services[i%len(services)],
			"region":    regions[i%len(regions)],
			"reporter":  owners[i%len(owners)],
			"assignee":  owners[(i+2)%len(owners)],
			"opened":    base.Add(time.Duration(i) * 3 * time.Hour).Format("2006-01-02 15:04"),
			"age_hours": int64(60*3 - i*3),
			"state":     states[i%len(states)],
		})
	}

	return &datasources.Table{Name: "incidents", Columns: cols, Rows: rows}
}

// Tables returns all demo tables.
func Tables() []*datasources.Table {
	return []*datasources.Table{ChannelsTable(), IncidentsTable()}
}

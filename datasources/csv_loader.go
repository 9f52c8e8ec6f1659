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
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/domonda/go-types/charset"
	fs "github.com/ungerik/go-fs"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
)

// typeSampleRows is how many data rows are sampled for type inference.
const typeSampleRows = 100

// CSVLoader loads tables from CSV files. Column types are inferred from a
// sample of the data: a column whose sampled values all parse as integers
// becomes int64, then float64, then bool, falling back to string.
//
// Required config keys:
//   - file_path: path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default "true")
//   - delimiter: field delimiter (default ",")
//   - encoding: source character encoding; auto-detected when empty
type CSVLoader struct{}

// SourceType returns "csv".
func (l *CSVLoader) SourceType() string {
	return "csv"
}

// DiscoverSchema parses the file and returns its column definitions. CSV
// carries no out-of-band schema, so discovery reads the data like Load;
// type inference still only samples the leading rows.
func (l *CSVLoader) DiscoverSchema(ctx context.Context, config map[string]string) ([]colspec.Column, error) {
	t, err := l.Load(ctx, config)
	if err != nil {
		return nil, err
	}
	return t.Columns, nil
}

// Load reads and parses the configured CSV file.
func (l *CSVLoader) Load(ctx context.Context, config map[string]string) (*Table, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("csv loader: missing required config key file_path")
	}

	hasHeader := config["has_header"] != "false"
	delimiter := ','
	if d := config["delimiter"]; d != "" {
		runes := []rune(d)
		if len(runes) != 1 {
			return nil, fmt.Errorf("csv loader: delimiter must be a single character, got %q", d)
		}
		delimiter = runes[0]
	}

	data, err := fs.File(filePath).ReadAllContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("csv loader: reading %s: %w", filePath, err)
	}

	data, err = decodeCharset(data, config["encoding"])
	if err != nil {
		return nil, fmt.Errorf("csv loader: decoding %s: %w", filePath, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv loader: parsing %s: %w", filePath, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv loader: %s is empty", filePath)
	}

	var names []string
	if hasHeader {
		names = records[0]
		records = records[1:]
	} else {
		names = make([]string, len(records[0]))
		for i := range names {
			names[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	types := inferColumnTypes(names, records)

	cols := make([]colspec.Column, len(names))
	for i, name := range names {
		cols[i] = colspec.Column{
			Key:       name,
			DataIndex: name,
			Title:     displayName(name),
			Sorter:    true,
		}
		if types[i] == "int64" || types[i] == "float64" {
			cols[i].Align = colspec.AlignRight
		}
	}

	rows := make([]cells.Row, 0, len(records))
	for _, record := range records {
		row := make(cells.Row, len(names))
		for i, name := range names {
			if i >= len(record) {
				continue
			}
			row[name] = convertValue(record[i], types[i])
		}
		rows = append(rows, row)
	}

	return &Table{Columns: cols, Rows: rows}, nil
}

// decodeCharset converts data to UTF-8. An explicit encoding name is used
// when given; otherwise the charset is auto-detected and a UTF-8 BOM is
// stripped.
func decodeCharset(data []byte, encodingName string) ([]byte, error) {
	if encodingName != "" {
		enc, err := charset.GetEncoding(encodingName)
		if err != nil {
			return nil, err
		}
		decoded, err := enc.Decode(data)
		if err != nil {
			return nil, err
		}
		return charset.TrimBOM(decoded, charset.BOMUTF8), nil
	}
	decoded, _, err := charset.AutoDecode(data, nil, nil)
	if err != nil {
		return nil, err
	}
	return charset.TrimBOM(decoded, charset.BOMUTF8), nil
}

// inferColumnTypes samples up to typeSampleRows data rows per column and
// picks the narrowest type all sampled values fit. Empty values are
// skipped; a column with no non-empty samples stays string.
func inferColumnTypes(names []string, records [][]string) []string {
	types := make([]string, len(names))
	for col := range names {
		canInt, canFloat, canBool := true, true, true
		sampled := 0
		for _, record := range records {
			if sampled >= typeSampleRows {
				break
			}
			if col >= len(record) || record[col] == "" {
				continue
			}
			v := record[col]
			sampled++
			if canInt {
				if _, err := strconv.ParseInt(v, 10, 64); err != nil {
					canInt = false
				}
			}
			if canFloat {
				if _, err := strconv.ParseFloat(v, 64); err != nil {
					canFloat = false
				}
			}
			if canBool {
				switch strings.ToLower(v) {
				case "true", "false":
				default:
					canBool = false
				}
			}
		}
		switch {
		case sampled == 0:
			types[col] = "string"
		case canInt:
			types[col] = "int64"
		case canFloat:
			types[col] = "float64"
		case canBool:
			types[col] = "bool"
		default:
			types[col] = "string"
		}
	}
	return types
}

// convertValue parses raw into the inferred column type. Values that fail
// to parse (past the sampled rows) stay strings.
func convertValue(raw, typ string) any {
	if raw == "" {
		return nil
	}
	switch typ {
	case "int64":
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case "float64":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "bool":
		if b, err := strconv.ParseBool(strings.ToLower(raw)); err == nil {
			return b
		}
	}
	return raw
}

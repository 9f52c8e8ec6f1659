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

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/core/presets"
	"github.com/tablekit/tablekit/core/scrolling"
	"github.com/tablekit/tablekit/core/server"
	"github.com/tablekit/tablekit/datasources"
	"github.com/tablekit/tablekit/demo"
	"github.com/tablekit/tablekit/logger"
)

var (
	listen    string
	dataDir   string
	logLevel  string
	csvFlags  []string
	withDemo  bool
	pageTitle string
)

var rootCmd = &cobra.Command{
	Use:   "tablekit",
	Short: "Serve data tables with filtering, sorting and pagination",
	Long: `Tablekit serves tabular data as interactive HTML grids. Tables come
from CSV or textproto sources, or from the built-in demo data set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&listen, "listen", ":8080", "address to serve on")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "base directory for relative source paths")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringArrayVar(&csvFlags, "csv", nil, "CSV source as name=path (repeatable)")
	rootCmd.Flags().BoolVar(&withDemo, "demo", true, "serve the built-in demo tables")
	rootCmd.Flags().StringVar(&pageTitle, "title", "Tablekit", "landing page title")
}

func run(ctx context.Context) error {
	logger.SetLevel(logLevel)
	log := logger.New("main")

	manager := datasources.NewManager(dataDir)
	manager.RegisterLoader(&datasources.CSVLoader{})
	manager.RegisterLoader(datasources.NewProtoLoader())

	for _, flag := range csvFlags {
		name, path, ok := strings.Cut(flag, "=")
		if !ok {
			return fmt.Errorf("invalid --csv value %q (expected name=path)", flag)
		}
		err := manager.AddSource(datasources.Source{
			Name:       name,
			SourceType: "csv",
			Config:     map[string]string{"file_path": path},
		})
		if err != nil {
			return err
		}
	}

	if withDemo {
		for _, t := range demo.Tables() {
			if err := manager.AddTable(t); err != nil {
				return err
			}
		}
	}

	if err := manager.LoadAll(ctx); err != nil {
		log.Error("some sources failed to load", err)
	}

	srv, err := server.NewServer(manager, pageTitle)
	if err != nil {
		return err
	}
	srv.SetPresetStore(presets.NewMemoryStore())

	if withDemo {
		srv.SetDefaultColumns("channels", []string{"name", "status", "region", "subscribers", "updated"})
		srv.SetDefaultColumns("incidents", []string{
			"id", "title", "severity", "service", "region",
			"reporter", "assignee", "opened", "age_hours", "state",
		})
		srv.SetScroll("channels", scrolling.Dimensions{X: 1060})
		srv.SetScroll("incidents", scrolling.Dimensions{X: 1440})
	}

	log.Info("serving", "addr", listen, "tables", strings.Join(manager.Names(), ","))
	return http.ListenAndServe(listen, srv.Handler())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

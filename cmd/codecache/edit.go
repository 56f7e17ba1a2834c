// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/agentkit/codecache/agent"
	"github.com/agentkit/codecache/codetool"
	"github.com/agentkit/codecache/mutate"
)

func runEdit(args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	diffsPath := fs.String("diffs", "", "path to a JSON file containing the diffs array for EditTool")
	configPath := fs.String("config", "", "optional YAML config file")
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) != 1 {
		fmt.Fprintln(os.Stderr, "edit: exactly one file path required")
		os.Exit(2)
	}
	if *diffsPath == "" {
		fmt.Fprintln(os.Stderr, "edit: -diffs is required")
		os.Exit(2)
	}
	path := paths[0]

	var cfg config
	if *configPath != "" {
		c, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "edit:", err)
			os.Exit(1)
		}
		cfg = c
	}

	data, err := os.ReadFile(*diffsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "edit:", err)
		os.Exit(1)
	}
	var diffs []codetool.DiffSpec
	if err := json.Unmarshal(data, &diffs); err != nil {
		fmt.Fprintln(os.Stderr, "edit: invalid diffs file:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	ag := agent.NewSession()
	logger := log.Default()

	readTool := &codetool.ReadTool{TokenBudget: cfg.TokenBudget, Logger: logger}
	if rr := readTool.Read(ctx, ag, codetool.ReadRequest{Files: []codetool.FileSpec{{Path: path}}}); !rr.Success {
		fmt.Fprintln(os.Stderr, rr.Stderr)
		os.Exit(1)
	}

	cache := codetool.CacheFor(ag)
	if tol := cfg.tolerance(); tol > 0 {
		cache.Tolerance = tol
	}

	editTool := &codetool.EditTool{
		Mutator: &mutate.Mutator{Cache: cache, Logger: logger},
		Logger:  logger,
	}
	result := editTool.Edit(ctx, ag, codetool.EditRequest{FilePath: path, Diffs: diffs})
	fmt.Print(result.Stdout)
	if result.Stderr != "" {
		fmt.Fprintln(os.Stderr, result.Stderr)
	}
	if !result.Success {
		os.Exit(1)
	}
}

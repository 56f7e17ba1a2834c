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
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/agentkit/codecache/agent"
	"github.com/agentkit/codecache/codetool"
)

func runRead(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	start := fs.Int("start", 0, "1-based start line, negative counts from the end (0 = beginning)")
	end := fs.Int("end", 0, "1-based end line, negative counts from the end (0 = end of file)")
	raw := fs.Bool("raw", false, "bypass block decomposition and print the raw line span")
	budget := fs.Int("budget", 0, "token budget cap (0 = use -config or the default)")
	configPath := fs.String("config", "", "optional YAML config file")
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "read: at least one file path required")
		os.Exit(2)
	}

	tokenBudget := *budget
	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read:", err)
			os.Exit(1)
		}
		if tokenBudget == 0 {
			tokenBudget = cfg.TokenBudget
		}
	}

	files := make([]codetool.FileSpec, 0, len(paths))
	for _, p := range paths {
		spec := codetool.FileSpec{Path: p, RawMode: *raw}
		if *start != 0 {
			s := *start
			spec.StartLine = &s
		}
		if *end != 0 {
			e := *end
			spec.EndLine = &e
		}
		files = append(files, spec)
	}

	tool := &codetool.ReadTool{TokenBudget: tokenBudget, Logger: log.Default()}
	result := tool.Read(context.Background(), agent.NewSession(), codetool.ReadRequest{Files: files})
	fmt.Print(result.Stdout)
	if result.Stderr != "" {
		fmt.Fprintln(os.Stderr, result.Stderr)
	}
	if !result.Success {
		os.Exit(1)
	}
}

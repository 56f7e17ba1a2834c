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

package codetool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentkit/codecache/agent"
	"github.com/agentkit/codecache/block"
)

// Logger is satisfied by *log.Logger and is nil-checked before use.
type Logger interface {
	Printf(format string, args ...interface{})
}

// ReadTool is the facade an agent orchestrator calls to read one or
// more files, populating the session's ReadCache in the process.
type ReadTool struct {
	// TokenBudget caps the estimated token count of any single file;
	// zero means DefaultTokenBudget.
	TokenBudget int
	Logger      Logger
}

func (t *ReadTool) logf(format string, args ...interface{}) {
	if t.Logger != nil {
		t.Logger.Printf(format, args...)
	}
}

func (t *ReadTool) tokenBudget() int {
	if t.TokenBudget > 0 {
		return t.TokenBudget
	}
	return DefaultTokenBudget
}

// Read resolves, decomposes and caches every file in req, returning a
// rendered display string. A file that fails (missing path, over
// budget) aborts only that file; others still run.
func (t *ReadTool) Read(ctx context.Context, ag agent.Handle, req ReadRequest) ReadResult {
	if len(req.Files) == 0 {
		return ReadResult{Stderr: fmt.Sprintf("%v: files must be a non-empty list", ErrArgument)}
	}

	cache := CacheFor(ag)
	var out strings.Builder
	var failures []string
	anySuccess := false

	for i, fs := range req.Files {
		if err := ctx.Err(); err != nil {
			failures = append(failures, fmt.Sprintf("file #%d (%s): cancelled: %v", i, fs.Path, err))
			continue
		}
		if fs.Path == "" {
			failures = append(failures, fmt.Sprintf("file #%d: %v: path is required", i, ErrArgument))
			continue
		}

		absPath, err := filepath.Abs(fs.Path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("file #%d (%s): %v: %v", i, fs.Path, ErrArgument, err))
			continue
		}

		data, err := os.ReadFile(absPath)
		if err != nil {
			failures = append(failures, fmt.Sprintf("file #%d (%s): %v: path not found", i, absPath, ErrNotFound))
			continue
		}

		if n := estimateTokens(data); n > t.tokenBudget() {
			failures = append(failures, fmt.Sprintf(
				"file #%d (%s): %v: estimated %d tokens exceeds cap %d", i, absPath, ErrBudget, n, t.tokenBudget()))
			continue
		}

		store := block.Decompose(absPath, string(data))
		if err := cache.Put(absPath, store); err != nil {
			t.logf("codetool: cache put for %s failed: %v", absPath, err)
			failures = append(failures, fmt.Sprintf("file #%d (%s): %v: %v", i, absPath, ErrNotFound, err))
			continue
		}

		anySuccess = true
		fmt.Fprintf(&out, "=== %s ===\n", absPath)
		if len(store.IDList) == 0 {
			out.WriteString("(empty file)\n\n")
			continue
		}
		out.WriteString(renderFile(store, data, fs))
		out.WriteString("\n")
	}

	return ReadResult{
		Success: anySuccess,
		Stdout:  out.String(),
		Stderr:  strings.Join(failures, "\n"),
	}
}

// renderFile produces fs's requested view of store: the raw line span
// when fs.RawMode is set, or the overlapping blocks (each prefixed
// with its id) otherwise. Either way the cache was already populated
// with the full decomposition before renderFile is called, so raw
// mode doesn't skip caching -- only display formatting.
func renderFile(store *block.Store, data []byte, fs FileSpec) string {
	text := string(data)
	var lines []string
	if text != "" {
		lines = strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	}
	total := len(lines)
	start, end := resolveRange(fs.StartLine, fs.EndLine, total)

	if fs.RawMode {
		if total == 0 || start > end {
			return ""
		}
		return strings.Join(lines[start-1:end], "\n") + "\n"
	}

	var b strings.Builder
	lineCursor := 1
	for _, id := range store.IDList {
		blk := store.Blocks[id]
		content := blk.Content
		span := blockLineSpan(content)
		blockStart, blockEnd := lineCursor, lineCursor+span-1
		lineCursor = blockEnd + 1
		if blockEnd < start || blockStart > end {
			continue
		}
		fmt.Fprintf(&b, "[%s fp:%s]\n%s\n", id, blk.Fingerprint(), content)
	}
	return b.String()
}

func blockLineSpan(content string) int {
	return strings.Count(content, "\n") + 1
}

// resolveRange clamps a 1-based [start,end] line range to [1,total],
// treating negative indices as counting from the end and swapping an
// inverted range rather than rejecting it.
func resolveRange(start, end *int, total int) (int, int) {
	if total == 0 {
		return 1, 0
	}
	s, e := 1, total
	if start != nil {
		s = normalizeIndex(*start, total)
	}
	if end != nil {
		e = normalizeIndex(*end, total)
	}
	if s < 1 {
		s = 1
	}
	if s > total {
		s = total
	}
	if e < 1 {
		e = 1
	}
	if e > total {
		e = total
	}
	if s > e {
		s, e = e, s
	}
	return s, e
}

func normalizeIndex(i, total int) int {
	if i < 0 {
		return total + i + 1
	}
	return i
}

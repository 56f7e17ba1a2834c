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
	"path/filepath"
	"strings"

	"github.com/agentkit/codecache/agent"
	"github.com/agentkit/codecache/block"
	"github.com/agentkit/codecache/edit"
	"github.com/agentkit/codecache/mutate"
)

// EditTool is the facade an agent orchestrator calls to apply a batch
// of block patches to a file.
type EditTool struct {
	Mutator *mutate.Mutator
	Logger  Logger
}

func (t *EditTool) logf(format string, args ...interface{}) {
	if t.Logger != nil {
		t.Logger.Printf(format, args...)
	}
}

// Edit validates req, applies its diffs to the cached BlockStore for
// req.FilePath, and commits the result. Validation failures are
// aggregated per diff index and reported together, before a store is
// ever cloned.
func (t *EditTool) Edit(ctx context.Context, ag agent.Handle, req EditRequest) EditResult {
	if req.FilePath == "" {
		return EditResult{Stderr: fmt.Sprintf("%v: file_path is required", ErrArgument)}
	}
	if len(req.Diffs) == 0 {
		return EditResult{Stderr: fmt.Sprintf("%v: diffs must be a non-empty list", ErrArgument)}
	}
	if err := ctx.Err(); err != nil {
		return EditResult{Stderr: fmt.Sprintf("cancelled: %v", err)}
	}

	absPath, err := filepath.Abs(req.FilePath)
	if err != nil {
		return EditResult{Stderr: fmt.Sprintf("%v: %v", ErrArgument, err)}
	}

	patches := make([]edit.Patch, len(req.Diffs))
	var argFailures []string
	for i, d := range req.Diffs {
		p, err := toPatch(d)
		if err != nil {
			argFailures = append(argFailures, fmt.Sprintf("diff #%d: %v: %v", i, ErrArgument, err))
			continue
		}
		patches[i] = p
	}
	if len(argFailures) > 0 {
		return EditResult{Stderr: strings.Join(argFailures, "\n")}
	}

	cache := CacheFor(ag)
	store, ok := cache.Get(absPath)
	if !ok {
		return EditResult{
			Stderr: fmt.Sprintf("%v: %s has no valid cache entry, call read_code first", ErrCacheInvalid, absPath),
		}
	}

	newStore, outcomes := edit.Apply(store, patches)
	if newStore == nil {
		return EditResult{Stderr: describeFailures(store, outcomes)}
	}

	if err := t.Mutator.Write(absPath, newStore); err != nil {
		t.logf("codetool: write to %s failed: %v", absPath, err)
		return EditResult{Stderr: fmt.Sprintf("write failed for %s: %v", absPath, err)}
	}

	return EditResult{
		Success: true,
		Stdout:  fmt.Sprintf("%s: applied %d/%d patches", absPath, successCount(outcomes), len(outcomes)),
		Stderr:  describeFailures(store, outcomes),
	}
}

func toPatch(d DiffSpec) (edit.Patch, error) {
	if d.BlockID == "" {
		return edit.Patch{}, fmt.Errorf("block_id is required")
	}
	switch d.Action {
	case "delete":
		return edit.NewDelete(d.BlockID), nil
	case "insert_before":
		if d.Content == nil {
			return edit.Patch{}, fmt.Errorf("insert_before requires content")
		}
		return edit.NewInsertBefore(d.BlockID, *d.Content), nil
	case "insert_after":
		if d.Content == nil {
			return edit.Patch{}, fmt.Errorf("insert_after requires content")
		}
		return edit.NewInsertAfter(d.BlockID, *d.Content), nil
	case "replace":
		if d.Content == nil {
			return edit.Patch{}, fmt.Errorf("replace requires content")
		}
		return edit.NewReplace(d.BlockID, *d.Content), nil
	case "edit":
		if d.Search == nil || d.Replace == nil {
			return edit.Patch{}, fmt.Errorf("edit requires search and replace")
		}
		return edit.NewEdit(d.BlockID, *d.Search, *d.Replace), nil
	default:
		return edit.Patch{}, fmt.Errorf("unknown action %q", d.Action)
	}
}

// describeFailures renders one line per failed outcome, including the
// target block's position in store.IDList (-1 if it wasn't found
// there at all) so a caller can locate it without re-reading the file.
func describeFailures(store *block.Store, outcomes []edit.Outcome) string {
	var lines []string
	for _, o := range outcomes {
		if o.Success {
			continue
		}
		pos := store.IndexOf(o.Patch.BlockID)
		lines = append(lines, fmt.Sprintf("diff #%d (%s) at block position %d: %v", o.Index, describePatch(o.Patch), pos, o.Err))
	}
	return strings.Join(lines, "\n")
}

func successCount(outcomes []edit.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

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

package edit

import (
	"strings"

	"github.com/agentkit/codecache/block"
)

// Outcome reports what happened when applying one Patch, identified
// by its position in the batch passed to Apply.
type Outcome struct {
	Index   int
	Patch   Patch
	Success bool
	// Err is nil iff Success. It is one of ErrBlockNotFound,
	// ErrSearchNotFound or a Patch.Validate error.
	Err error
}

// previewLen bounds how much of a failed edit's search text appears in
// an Outcome's error, so a long search string doesn't blow up a
// caller's error summary.
const previewLen = 40

// Apply runs patches against store in order: it clones store first so
// the input is never mutated, applies each patch to the clone, and
// returns the clone alongside one Outcome per patch. If every patch
// fails, the returned store is nil.
//
// Apply is a pure function of (store, patches): the same inputs always
// produce the same outputs.
func Apply(store *block.Store, patches []Patch) (*block.Store, []Outcome) {
	out := store.Clone()
	outcomes := make([]Outcome, len(patches))
	successes := 0

	for i, p := range patches {
		outcomes[i] = Outcome{Index: i, Patch: p}
		if err := applyOne(out, p); err != nil {
			outcomes[i].Err = err
			continue
		}
		outcomes[i].Success = true
		successes++
	}

	if successes == 0 && len(patches) > 0 {
		return nil, outcomes
	}
	return out, outcomes
}

func applyOne(s *block.Store, p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b, ok := s.Blocks[p.BlockID]
	if !ok {
		return ErrBlockNotFound
	}

	switch p.Action {
	case ActionDelete:
		b.Content = ""
	case ActionInsertBefore:
		b.Content = normalizeInsertBefore(*p.Content) + b.Content
	case ActionInsertAfter:
		b.Content = b.Content + normalizeInsertAfter(*p.Content, b.Content)
	case ActionReplace:
		b.Content = *p.Content
	case ActionEdit:
		idx := strings.Index(b.Content, *p.Search)
		if idx < 0 {
			return ErrSearchNotFound
		}
		b.Content = b.Content[:idx] + *p.Replace + b.Content[idx+len(*p.Search):]
	}
	return nil
}

// normalizeInsertBefore ensures content ends with \n before it's
// prepended to a block, so the inserted text stays on its own line(s).
func normalizeInsertBefore(content string) string {
	if !strings.HasSuffix(content, "\n") {
		return content + "\n"
	}
	return content
}

// normalizeInsertAfter ensures a separator newline exists between
// oldContent and content without doubling one that's already there.
func normalizeInsertAfter(content, oldContent string) string {
	if strings.HasPrefix(content, "\n") {
		return content
	}
	if oldContent == "" || !strings.HasSuffix(oldContent, "\n") {
		return "\n" + content
	}
	return content
}

// Preview truncates s for inclusion in an error summary.
func Preview(s string) string {
	if len(s) <= previewLen {
		return s
	}
	return s[:previewLen] + "..."
}

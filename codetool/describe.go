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
	"fmt"

	"github.com/agentkit/codecache/edit"
)

// describePatch renders a one-line, human-readable description of p
// for inclusion in a failure summary: action, block id, and a
// truncated payload.
func describePatch(p edit.Patch) string {
	switch p.Action {
	case edit.ActionDelete:
		return fmt.Sprintf("delete %s", p.BlockID)
	case edit.ActionInsertBefore:
		return fmt.Sprintf("insert_before %s: %q", p.BlockID, edit.Preview(derefStr(p.Content)))
	case edit.ActionInsertAfter:
		return fmt.Sprintf("insert_after %s: %q", p.BlockID, edit.Preview(derefStr(p.Content)))
	case edit.ActionReplace:
		return fmt.Sprintf("replace %s: %q", p.BlockID, edit.Preview(derefStr(p.Content)))
	case edit.ActionEdit:
		return fmt.Sprintf("edit %s: search %q", p.BlockID, edit.Preview(derefStr(p.Search)))
	default:
		return fmt.Sprintf("%s %s", p.Action, p.BlockID)
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

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

import "errors"

var (
	// ErrBlockNotFound is the per-patch failure when BlockID isn't in
	// the store being patched.
	ErrBlockNotFound = errors.New("edit: block id not found")
	// ErrSearchNotFound is the per-patch failure when an edit action's
	// Search string doesn't occur in the target block.
	ErrSearchNotFound = errors.New("edit: search text not found in block")
	// ErrMissingPayload is returned by Patch.Validate when an action's
	// required fields are nil.
	ErrMissingPayload = errors.New("edit: missing required payload for action")
	// ErrUnknownAction is returned by Patch.Validate for an Action
	// value outside the closed enumeration.
	ErrUnknownAction = errors.New("edit: unknown action")
)

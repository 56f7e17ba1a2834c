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

import "github.com/agentkit/codecache/utf8"

// DefaultTokenBudget is the token cap ReadTool enforces when its
// caller hasn't set one.
const DefaultTokenBudget = 8000

// charsPerToken approximates the rune-to-token ratio of a typical
// tokenizer closely enough for a pre-flight budget check; it is not
// meant to match any particular model's tokenizer exactly.
const charsPerToken = 4

// estimateTokens approximates how many tokens text will cost, using
// utf8.ValidStringLength's rune count rather than len(text) so
// multi-byte source (identifiers in non-Latin scripts, for instance)
// isn't overcounted.
func estimateTokens(text []byte) int {
	runes := utf8.ValidStringLength(text)
	return (runes + charsPerToken - 1) / charsPerToken
}

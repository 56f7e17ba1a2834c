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

package block

// rustGroups implements the Rust mode: a block is a maximal
// run of top-level "use" statements, or a single top-level item --
// fn, struct, enum, impl, trait or mod -- including any attributes
// ("#[...]") immediately above it, together with its brace-delimited
// body (or terminating ";" for attribute-only or extern items).
func rustGroups(lines []string) [][]string {
	return buildLangGroups(lines, rustConstructLen)
}

func rustConstructLen(lines []string, i int) int {
	switch {
	case isRustUseLine(lines[i]):
		j := i
		for j < len(lines) && isRustUseLine(lines[j]) {
			j++
		}
		return j - i
	case isRustAttribute(lines[i]):
		j := i
		for j < len(lines) && isRustAttribute(lines[j]) {
			j++
		}
		return j + braceExtent(lines, j) - i
	default:
		return braceExtent(lines, i)
	}
}

func isRustUseLine(line string) bool {
	return hasPrefix(line, "use ")
}

func isRustAttribute(line string) bool {
	return hasPrefix(line, "#[") || hasPrefix(line, "#![")
}

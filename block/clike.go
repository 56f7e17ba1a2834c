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

// cLikeGroups implements the C and C++ modes: a block is
// either a maximal run of top-level preprocessor directives
// ("#include", "#define", ...), or a single top-level declaration --
// a function, struct, class, enum or union definition together with
// its brace-delimited body, or a single statement/declaration ending
// in ";" when no body is present.
func cLikeGroups(lines []string) [][]string {
	return buildLangGroups(lines, cLikeConstructLen)
}

func cLikeConstructLen(lines []string, i int) int {
	if isPreprocessorLine(lines[i]) {
		j := i
		for j < len(lines) && isPreprocessorLine(lines[j]) {
			j++
		}
		return j - i
	}
	return braceExtent(lines, i)
}

func isPreprocessorLine(line string) bool {
	return hasPrefix(line, "#")
}

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

// goGroups implements the Go mode: a block is the "package"
// line, a single or parenthesized "import"/"var"/"const"/"type"
// declaration, or a single top-level "func"/"type" declaration together
// with its brace-delimited body. A "type" line with no "{" on it is a
// one-line block.
func goGroups(lines []string) [][]string {
	return buildLangGroups(lines, goConstructLen)
}

func goConstructLen(lines []string, i int) int {
	line := lines[i]
	switch {
	case hasPrefix(line, "package "):
		return 1
	case hasPrefix(line, "import ") || hasPrefix(line, "var ") || hasPrefix(line, "const "):
		if hasSuffixParen(line) {
			return parenExtent(lines, i)
		}
		return 1
	case hasPrefix(line, "type "):
		if hasSuffixParen(line) {
			return parenExtent(lines, i)
		}
		if indexOf(line, "{") < 0 {
			return 1
		}
		return braceExtent(lines, i)
	case hasPrefix(line, "func "):
		return braceExtent(lines, i)
	default:
		return braceExtent(lines, i)
	}
}

func hasSuffixParen(line string) bool {
	t := trimRight(line)
	return len(t) > 0 && t[len(t)-1] == '('
}

// parenExtent mirrors braceExtent but tracks "(" / ")" depth; used for
// Go's grouped import/var/const/type declarations.
func parenExtent(lines []string, i int) int {
	n := len(lines)
	depth := 0
	seen := false
	for j := i; j < n; j++ {
		for _, c := range lines[j] {
			switch c {
			case '(':
				depth++
				seen = true
			case ')':
				depth--
			}
		}
		if seen && depth <= 0 {
			return j - i + 1
		}
	}
	return n - i
}

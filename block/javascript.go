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

// javascriptGroups implements the JavaScript mode: a block is
// a maximal run of top-level "import" statements (or "const x =
// require(...)" lines), or a single top-level "function"/"class"
// declaration together with its brace-delimited body, or any other
// top-level statement/assignment up to the next recognized construct
// or blank-line run.
func javascriptGroups(lines []string) [][]string {
	return buildLangGroups(lines, javascriptConstructLen)
}

func javascriptConstructLen(lines []string, i int) int {
	switch {
	case isJSImportLine(lines[i]):
		j := i
		for j < len(lines) && isJSImportLine(lines[j]) {
			j++
		}
		return j - i
	case isJSFunctionOrClassLine(lines[i]):
		return braceExtent(lines, i)
	default:
		j := i + 1
		for j < len(lines) {
			if isBlank(lines[j]) {
				break
			}
			if isIndented(lines[j]) {
				j++
				continue
			}
			if isJSImportLine(lines[j]) || isJSFunctionOrClassLine(lines[j]) {
				break
			}
			j++
		}
		return j - i
	}
}

func isJSImportLine(line string) bool {
	return hasPrefix(line, "import ") || hasPrefix(line, "export import ") || containsRequire(line)
}

func containsRequire(line string) bool {
	return (hasPrefix(line, "const ") || hasPrefix(line, "let ") || hasPrefix(line, "var ")) &&
		indexOf(line, "require(") >= 0
}

func indexOf(s, substr string) int {
	n, m := len(s), len(substr)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == substr {
			return i
		}
	}
	return -1
}

func isJSFunctionOrClassLine(line string) bool {
	return hasPrefix(line, "function ") || hasPrefix(line, "async function ") ||
		hasPrefix(line, "class ") || hasPrefix(line, "export function ") ||
		hasPrefix(line, "export class ") || hasPrefix(line, "export default function ") ||
		hasPrefix(line, "export default class ")
}

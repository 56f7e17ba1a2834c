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

// pythonGroups implements the Python mode: a block is one of
//   - a maximal run of top-level import / from-import statements,
//   - a top-level function definition (any decorators, "def" or
//     "async def", plus its full indented body),
//   - a top-level class definition (decorators, "class", plus body,
//     including all nested members -- nested defs/classes are not
//     split out on their own),
//   - any other top-level chunk, up to the next recognized construct
//     or blank-line run.
func pythonGroups(lines []string) [][]string {
	return buildLangGroups(lines, pythonConstructLen)
}

func pythonConstructLen(lines []string, i int) int {
	switch {
	case isPyImportLine(lines[i]):
		j := i
		for j < len(lines) && isPyImportLine(lines[j]) {
			j++
		}
		return j - i
	case isPyDecorator(lines[i]) || isPyDefLine(lines[i]) || isPyClassLine(lines[i]):
		j := i
		for j < len(lines) && isPyDecorator(lines[j]) {
			j++
		}
		if j < len(lines) && (isPyDefLine(lines[j]) || isPyClassLine(lines[j])) {
			j += bodyExtent(lines, j)
		} else if j > i {
			j++
		}
		return j - i
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
			if isPyImportLine(lines[j]) || isPyDefLine(lines[j]) || isPyClassLine(lines[j]) || isPyDecorator(lines[j]) {
				break
			}
			j++
		}
		return j - i
	}
}

func isPyImportLine(line string) bool {
	return hasPrefix(line, "import ") || line == "import" || hasPrefix(line, "from ")
}

func isPyDefLine(line string) bool {
	return hasPrefix(line, "def ") || hasPrefix(line, "async def ")
}

func isPyClassLine(line string) bool {
	return hasPrefix(line, "class ")
}

func isPyDecorator(line string) bool {
	return hasPrefix(line, "@")
}

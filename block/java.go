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

// javaGroups implements the Java mode: a block is a maximal
// run of top-level "package"/"import" statements, or a single
// top-level type declaration (class, interface, enum, record,
// annotation) -- including any annotations immediately preceding it --
// together with its brace-delimited body.
func javaGroups(lines []string) [][]string {
	return buildLangGroups(lines, javaConstructLen)
}

func javaConstructLen(lines []string, i int) int {
	switch {
	case isJavaImportLine(lines[i]):
		j := i
		for j < len(lines) && isJavaImportLine(lines[j]) {
			j++
		}
		return j - i
	case isJavaAnnotation(lines[i]):
		j := i
		for j < len(lines) && isJavaAnnotation(lines[j]) {
			j++
		}
		return j + braceExtent(lines, j) - i
	default:
		return braceExtent(lines, i)
	}
}

func isJavaImportLine(line string) bool {
	return hasPrefix(line, "package ") || hasPrefix(line, "import ")
}

func isJavaAnnotation(line string) bool {
	return hasPrefix(line, "@")
}

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

// genericGroups implements the fallback mode used for any file whose
// extension isn't otherwise recognized: blocks are maximal runs of
// non-blank lines, separated by runs of one-or-more blank lines.
//
// A single blank line between two non-blank runs is folded into the
// trailing whitespace of the preceding block. A run of two or more
// blank lines becomes its own block, since it forms a separator in
// its own right rather than being absorbed. A leading blank run (no
// preceding block to absorb into) and a
// trailing blank run (nothing to separate from) each become their own
// block / get absorbed into the last block respectively. Every choice
// here still reconstructs byte-for-byte: block-join concatenation is
// associative over any complete, order-preserving partition of lines,
// so the only thing this policy affects is where block boundaries
// (and therefore block ids) fall, not round-trip fidelity.
func genericGroups(lines []string) [][]string {
	var groups [][]string
	n := len(lines)
	i := 0
	for i < n {
		if isBlank(lines[i]) {
			j := i
			for j < n && isBlank(lines[j]) {
				j++
			}
			run := lines[i:j]
			switch {
			case len(groups) == 0:
				// leading blank run: its own block
				groups = append(groups, cloneLines(run))
			case j == n:
				// trailing blank run: absorbed by the last block
				last := len(groups) - 1
				groups[last] = append(groups[last], run...)
			case len(run) == 1:
				// lone blank: trailing whitespace of preceding block
				last := len(groups) - 1
				groups[last] = append(groups[last], run[0])
			default:
				// run of >=2 blanks: its own block
				groups = append(groups, cloneLines(run))
			}
			i = j
			continue
		}
		j := i
		for j < n && !isBlank(lines[j]) {
			j++
		}
		groups = append(groups, cloneLines(lines[i:j]))
		i = j
	}
	return groups
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

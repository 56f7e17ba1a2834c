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

// Package block decomposes source files into ordered, stably-identified
// blocks and reconstructs file bytes from them.
//
// A Store is produced by Decompose and held by a cache (see the rcache
// package); it is mutated only by cloning it first (see the edit
// package), so a Store value should be treated as immutable once handed
// to more than one caller.
package block

import (
	"bytes"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"
)

// Block is a contiguous, named region of a source file.
//
// Content never includes the separator newline between adjacent
// blocks; that newline is supplied by Store.Reconstruct.
type Block struct {
	Content string
}

// Fingerprint returns a short content hash for b, stable across
// repeated decompositions of unchanged input and changing iff Content
// changes. It has no bearing on round-trip reconstruction; it exists
// so a caller can tell a block actually changed without diffing text.
func (b Block) Fingerprint() string {
	sum := blake2b.Sum256([]byte(b.Content))
	return hexEncode(sum[:8])
}

func hexEncode(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0xf]
	}
	return string(out)
}

// Store is the full decomposition of one file: an ordered id list, an
// id->Block map, and the file metadata needed to validate and
// reconstruct it.
//
// Invariants: set(IDList) == set(Blocks keys); ids are unique within
// a Store; joining Blocks[id].Content for id in IDList with single
// "\n" separators, then appending "\n" iff FileEndsWithNewline,
// reproduces the original file byte-for-byte.
type Store struct {
	IDList              []string
	Blocks              map[string]*Block
	TotalLines          int
	FileEndsWithNewline bool

	// ReadTime is when this Store was produced by Decompose.
	ReadTime time.Time
	// FileMTime is the file's modification time at the moment of
	// decomposition; used by rcache for validity checks.
	FileMTime time.Time
}

// NewEmpty returns the Store produced by decomposing empty input.
func NewEmpty() *Store {
	return &Store{
		IDList: []string{},
		Blocks: map[string]*Block{},
	}
}

// nextID returns the id that should be assigned to the (1-indexed) nth
// block emitted during decomposition.
func nextID(n int) string {
	return "block-" + strconv.Itoa(n)
}

// Clone returns a deep copy of s. The returned Store's IDList and
// Blocks map are independent of s's; Block content strings may be
// shared, since Go strings are immutable.
func (s *Store) Clone() *Store {
	out := &Store{
		IDList:              slices.Clone(s.IDList),
		Blocks:              make(map[string]*Block, len(s.Blocks)),
		TotalLines:          s.TotalLines,
		FileEndsWithNewline: s.FileEndsWithNewline,
		ReadTime:            s.ReadTime,
		FileMTime:           s.FileMTime,
	}
	for id, b := range s.Blocks {
		cp := *b
		out.Blocks[id] = &cp
	}
	return out
}

// Valid reports whether s satisfies its structural invariants: the id
// list and block map agree on their key set and ids are unique.
func (s *Store) Valid() bool {
	if len(s.IDList) != len(s.Blocks) {
		return false
	}
	seen := make(map[string]bool, len(s.IDList))
	for _, id := range s.IDList {
		if seen[id] {
			return false
		}
		seen[id] = true
		if _, ok := s.Blocks[id]; !ok {
			return false
		}
	}
	return true
}

// Has reports whether id is present in s.
func (s *Store) Has(id string) bool {
	_, ok := s.Blocks[id]
	return ok
}

// Reconstruct serializes s back into file bytes: blocks joined by
// "\n", with a trailing "\n" iff FileEndsWithNewline. This is the
// inverse of Decompose and is the basis of the round-trip law.
func (s *Store) Reconstruct() []byte {
	if len(s.IDList) == 0 {
		return []byte{}
	}
	var buf bytes.Buffer
	for i, id := range s.IDList {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if b := s.Blocks[id]; b != nil {
			buf.WriteString(b.Content)
		}
	}
	if s.FileEndsWithNewline {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// IndexOf returns the position of id within s.IDList, or -1 if absent.
func (s *Store) IndexOf(id string) int {
	return slices.Index(s.IDList, id)
}

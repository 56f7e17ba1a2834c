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

package mutate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentkit/codecache/block"
	"github.com/agentkit/codecache/rcache"
)

func TestWriteNewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.go")

	s := block.Decompose("new.go", "package main\n")
	m := &Mutator{}
	if err := m.Write(path, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "package main\n" {
		t.Fatalf("got %q", got)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("backup should be removed after success")
	}
}

func TestWriteOverwriteCreatesAndRemovesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	if err := os.WriteFile(path, []byte("package old\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := block.Decompose("f.go", "package new\n")
	m := &Mutator{}
	if err := m.Write(path, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "package new\n" {
		t.Fatalf("got %q", got)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("backup should not remain after success")
	}
}

func TestWriteRefreshesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	if err := os.WriteFile(path, []byte("package old\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	cache := rcache.New()
	s := block.Decompose("f.go", "package new\n")
	m := &Mutator{Cache: cache}
	if err := m.Write(path, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, ok := cache.Get(path)
	if !ok {
		t.Fatalf("expected cache hit after Write")
	}
	if string(got.Reconstruct()) != "package new\n" {
		t.Fatalf("cached store mismatch: %q", got.Reconstruct())
	}
}

func TestWriteCompressesLargeBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	big := make([]byte, 128)
	for i := range big {
		big[i] = 'a'
	}
	if err := os.WriteFile(path, big, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := block.Decompose("big.txt", "small\n")
	m := &Mutator{CompressThreshold: 16}
	if err := m.Write(path, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "small\n" {
		t.Fatalf("got %q", got)
	}
}

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

package rcache

import (
	"os"
	"testing"
	"time"

	"github.com/agentkit/codecache/block"
)

type fakeInfo struct {
	mtime time.Time
}

func (f fakeInfo) Name() string       { return "f" }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return 0 }
func (f fakeInfo) ModTime() time.Time { return f.mtime }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() interface{}   { return nil }

func newTestCache(mtime *time.Time) *Cache {
	c := New()
	c.statFn = func(string) (os.FileInfo, error) {
		return fakeInfo{mtime: *mtime}, nil
	}
	return c
}

func TestGetMissingEntry(t *testing.T) {
	now := time.Now()
	c := newTestCache(&now)
	if _, ok := c.Get("/tmp/does-not-exist.go"); ok {
		t.Fatalf("expected miss for uncached path")
	}
}

func TestPutThenGetWithinTolerance(t *testing.T) {
	mtime := time.Now()
	c := newTestCache(&mtime)
	s := block.Decompose("f.go", "package main\n")

	if err := c.Put("/tmp/f.go", s); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := c.Get("/tmp/f.go")
	if !ok {
		t.Fatalf("expected hit immediately after Put")
	}
	if got != s {
		t.Fatalf("Get returned a different Store")
	}
}

func TestGetInvalidatedByMTimeDrift(t *testing.T) {
	mtime := time.Now()
	c := newTestCache(&mtime)
	s := block.Decompose("f.go", "package main\n")
	if err := c.Put("/tmp/f.go", s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mtime = mtime.Add(2 * time.Second)
	if _, ok := c.Get("/tmp/f.go"); ok {
		t.Fatalf("expected miss once mtime drifts past tolerance")
	}
}

func TestRefreshTimestampsKeepsEntryValidAfterWrite(t *testing.T) {
	mtime := time.Now()
	c := newTestCache(&mtime)
	s := block.Decompose("f.go", "package main\n")
	if err := c.Put("/tmp/f.go", s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Simulate the writer advancing the file's mtime past tolerance.
	mtime = mtime.Add(2 * time.Second)
	if err := c.RefreshTimestamps("/tmp/f.go"); err != nil {
		t.Fatalf("RefreshTimestamps: %v", err)
	}
	if _, ok := c.Get("/tmp/f.go"); !ok {
		t.Fatalf("expected hit after RefreshTimestamps absorbed the new mtime")
	}
}

func TestInvalidate(t *testing.T) {
	mtime := time.Now()
	c := newTestCache(&mtime)
	s := block.Decompose("f.go", "package main\n")
	if err := c.Put("/tmp/f.go", s); err != nil {
		t.Fatalf("Put: %v", err)
	}
	c.Invalidate("/tmp/f.go")
	if _, ok := c.Get("/tmp/f.go"); ok {
		t.Fatalf("expected miss after Invalidate")
	}
}

func TestRefreshTimestampsOnUncachedPathErrors(t *testing.T) {
	mtime := time.Now()
	c := newTestCache(&mtime)
	if err := c.RefreshTimestamps("/tmp/never-put.go"); err != ErrNotCached {
		t.Fatalf("got %v, want ErrNotCached", err)
	}
}

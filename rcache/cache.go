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

// Package rcache holds a per-session cache of decomposed files, keyed
// by absolute path, and the mtime-based validity check that decides
// whether a cached entry can still be trusted.
//
// A Cache is never process-global: each agent session owns its own
// instance (see codetool.CacheFor for how a session obtains one).
package rcache

import (
	"os"
	"sync"
	"time"

	"github.com/agentkit/codecache/block"
)

// Logger is satisfied by *log.Logger and is nil-checked before use, so
// a Cache works fine with no logger configured.
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultTolerance is the mtime comparison tolerance: a cache entry is
// considered stale once the file's mtime has moved by more than this
// much relative to the mtime recorded at decomposition.
const DefaultTolerance = 100 * time.Millisecond

// Cache is a path-keyed store of *block.Store values, scoped to a
// single agent session. The zero value is not usable; build one with
// New.
type Cache struct {
	// Tolerance is the mtime comparison window used by Get. Widen it
	// (e.g. to 1s) on filesystems with coarse mtime granularity.
	Tolerance time.Duration
	Logger    Logger

	mu      sync.RWMutex
	entries map[string]*block.Store

	// statFn is overridden in tests to avoid touching the filesystem.
	statFn func(string) (os.FileInfo, error)
}

// New returns an empty Cache with the default mtime tolerance.
func New() *Cache {
	return &Cache{
		Tolerance: DefaultTolerance,
		entries:   make(map[string]*block.Store),
		statFn:    os.Stat,
	}
}

func (c *Cache) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

// Get returns the cached Store for absPath if present and valid: the
// file must still exist, its current mtime must be within Tolerance of
// the mtime recorded when the entry was put, and the store's
// structural invariants must hold. A consumer MUST treat a false
// return as "re-read via ReadTool", never edit a stale store.
func (c *Cache) Get(absPath string) (*block.Store, bool) {
	c.mu.RLock()
	s, ok := c.entries[absPath]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	info, err := c.statFn(absPath)
	if err != nil {
		c.logf("rcache: stat %s failed, treating as miss: %v", absPath, err)
		return nil, false
	}
	if !withinTolerance(info.ModTime(), s.FileMTime, c.Tolerance) {
		return nil, false
	}
	if !s.Valid() {
		c.logf("rcache: entry for %s failed structural validity, treating as miss", absPath)
		return nil, false
	}
	return s, true
}

// Put stores or replaces the entry for absPath, refreshing ReadTime
// and FileMTime from the filesystem.
func (c *Cache) Put(absPath string, s *block.Store) error {
	info, err := c.statFn(absPath)
	if err != nil {
		return err
	}
	s.FileMTime = info.ModTime()
	s.ReadTime = time.Now()

	c.mu.Lock()
	c.entries[absPath] = s
	c.mu.Unlock()
	return nil
}

// Invalidate drops any cached entry for absPath.
func (c *Cache) Invalidate(absPath string) {
	c.mu.Lock()
	delete(c.entries, absPath)
	c.mu.Unlock()
}

// RefreshTimestamps re-reads absPath's mtime from disk and updates the
// cached entry's FileMTime/ReadTime in place, without touching its
// blocks. A writer can call this after a successful write so its own
// mtime update doesn't immediately invalidate the entry. (mutate.Mutator
// uses Put instead, which replaces the entry and refreshes both
// timestamps.)
func (c *Cache) RefreshTimestamps(absPath string) error {
	info, err := c.statFn(absPath)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[absPath]
	if !ok {
		return ErrNotCached
	}
	s.FileMTime = info.ModTime()
	s.ReadTime = time.Now()
	return nil
}

func withinTolerance(a, b time.Time, tol time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

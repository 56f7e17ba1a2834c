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

// Package mutate turns a BlockStore back into file bytes and commits
// them to disk with an atomic backup/write/rollback protocol.
package mutate

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/agentkit/codecache/block"
	"github.com/agentkit/codecache/rcache"
)

// Logger is satisfied by *log.Logger and is nil-checked before use.
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultCompressThreshold is the backup size, in bytes, above which
// Mutator compresses the `.bak` sibling with zstd instead of writing
// it verbatim.
const DefaultCompressThreshold = 1 << 20 // 1 MiB

// Mutator commits BlockStore reconstructions to disk.
//
// If Cache is non-nil, a successful Write replaces that path's entry
// with s and refreshes its timestamps in one step -- the writer's own
// mtime bump never invalidates the entry it just produced.
type Mutator struct {
	Cache             *rcache.Cache
	Logger            Logger
	CompressThreshold int64
}

func (m *Mutator) logf(format string, args ...interface{}) {
	if m.Logger != nil {
		m.Logger.Printf(format, args...)
	}
}

func (m *Mutator) compressThreshold() int64 {
	if m.CompressThreshold > 0 {
		return m.CompressThreshold
	}
	return DefaultCompressThreshold
}

// Write reconstructs s and commits it to absPath: back up any
// existing file, write the new content to a temp file in the same
// directory, rename it into place, and roll back to the backup on any
// failure along the way. On success the backup is deleted and, if
// m.Cache is set, the cache entry for absPath is replaced with s.
func (m *Mutator) Write(absPath string, s *block.Store) error {
	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return &WriteError{Path: absPath, Err: err}
	}
	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: absPath, Err: err}
	}

	backupPath, hadBackup, err := m.makeBackup(absPath)
	if err != nil {
		m.logf("mutate: backup of %s failed, proceeding without one: %v", absPath, err)
		hadBackup = false
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(absPath); statErr == nil {
		mode = info.Mode()
	}

	tmp, err := os.CreateTemp(dir, ".codecache-tmp-*")
	if err != nil {
		return m.fail(absPath, backupPath, hadBackup, err)
	}
	tmpName := tmp.Name()

	writeErr := writeAndClose(tmp, s.Reconstruct())
	if writeErr != nil {
		os.Remove(tmpName)
		return m.fail(absPath, backupPath, hadBackup, writeErr)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		m.logf("mutate: chmod of %s failed, continuing with existing mode: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, absPath); err != nil {
		os.Remove(tmpName)
		return m.fail(absPath, backupPath, hadBackup, err)
	}
	if err := fsyncDir(dir); err != nil {
		m.logf("mutate: fsync of %s failed: %v", dir, err)
	}

	if hadBackup {
		os.Remove(backupPath)
	}
	if m.Cache != nil {
		if err := m.Cache.Put(absPath, s); err != nil {
			m.logf("mutate: cache refresh for %s failed: %v", absPath, err)
		}
	}
	return nil
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fail restores the backup (if any) and returns the typed WriteError
// for the underlying cause. The cache is left untouched: a failed
// write never leaves a stale entry behind.
func (m *Mutator) fail(absPath, backupPath string, hadBackup bool, cause error) error {
	rolled := false
	if hadBackup {
		if err := m.restoreBackup(absPath, backupPath); err != nil {
			m.logf("mutate: restoring backup for %s failed: %v", absPath, err)
		} else {
			rolled = true
		}
		os.Remove(backupPath)
	}
	return &WriteError{Path: absPath, Rolled: rolled, Err: cause}
}

// makeBackup copies absPath's current bytes to a sibling backup file,
// compressing it with zstd once it exceeds compressThreshold. A
// missing source file is not an error: there is simply nothing to
// back up yet.
func (m *Mutator) makeBackup(absPath string) (path string, ok bool, err error) {
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", false, err
	}

	if int64(len(data)) > m.compressThreshold() {
		path := absPath + ".bak.zst"
		if err := writeZstd(path, data); err != nil {
			os.Remove(path)
			return "", false, err
		}
		return path, true, nil
	}

	path = absPath + ".bak"
	if err := os.WriteFile(path, data, info.Mode()); err != nil {
		return "", false, err
	}
	return path, true, nil
}

func writeZstd(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (m *Mutator) restoreBackup(absPath, backupPath string) error {
	data, err := readBackup(backupPath)
	if err != nil {
		return err
	}
	return os.WriteFile(absPath, data, 0o644)
}

func readBackup(path string) ([]byte, error) {
	if !strings.HasSuffix(path, ".zst") {
		return os.ReadFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

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

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMatchesEquivalentFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codecache.yaml")
	yaml := "token_budget: 4000\nmtime_tolerance_ms: 250\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.TokenBudget != 4000 {
		t.Fatalf("TokenBudget = %d, want 4000", cfg.TokenBudget)
	}
	if got, want := cfg.tolerance(), 250*time.Millisecond; got != want {
		t.Fatalf("tolerance = %v, want %v", got, want)
	}
}

func TestZeroToleranceConfigLeavesCacheDefault(t *testing.T) {
	cfg := config{}
	if got := cfg.tolerance(); got != 0 {
		t.Fatalf("expected zero tolerance override, got %v", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig("/nonexistent/codecache.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

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

// Package agent models the orchestrator-side "handle" that codetool
// depends on: something that can get/set a namespaced value on behalf
// of one session, and nothing more. The core never reaches past this
// interface, so it has no idea whether it's embedded in a CLI, a
// long-running service, or a test harness.
package agent

import "sync"

// Handle is the minimal capability codetool needs from its caller: a
// per-session key/value store. Get reports whether key was present.
type Handle interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
}

// Session is an in-memory Handle, identified by a uuid so concurrent
// sessions are distinguishable in logs.
type Session struct {
	ID string

	mu     sync.RWMutex
	values map[string]interface{}
}

// NewSession returns a ready-to-use in-memory Handle.
func NewSession() *Session {
	return &Session{
		ID:     newSessionID(),
		values: make(map[string]interface{}),
	}
}

func (s *Session) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

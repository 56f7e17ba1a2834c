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

package codetool

import (
	"github.com/agentkit/codecache/agent"
	"github.com/agentkit/codecache/rcache"
)

// cacheKey namespaces the ReadCache within an agent.Handle's key/value
// store.
const cacheKey = "codecache.readcache"

// CacheFor returns ag's ReadCache, creating and storing a fresh one on
// first use. Every call with the same Handle returns the same Cache.
func CacheFor(ag agent.Handle) *rcache.Cache {
	if v, ok := ag.Get(cacheKey); ok {
		if c, ok := v.(*rcache.Cache); ok {
			return c
		}
	}
	c := rcache.New()
	ag.Set(cacheKey, c)
	return c
}

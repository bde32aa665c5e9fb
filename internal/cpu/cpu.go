// Copyright (C) 2024 uubed-go authors
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

// Package cpu probes for the wide-lane integer support the q64 package's
// vectorized path needs, caching the result process-wide after the first
// call the way ion/zion/iguana picks its decompressIguana/pickBestMatch
// implementations once at init time.
package cpu

import "sync"

var (
	once      sync.Once
	wideLanes bool
)

// probe is overridden per architecture (see cpu_amd64.go / cpu_generic.go);
// it must never be called outside of once.Do.
var probe = func() bool { return false }

// HasWideLanes reports whether the process may use q64's word-at-a-time
// ("vectorized") encode path. The result is computed once, lazily, and
// cached; all subsequent calls are a lock-free read of a bool set exactly
// once, matching §5's capability-probe contract.
func HasWideLanes() bool {
	once.Do(func() {
		wideLanes = probe()
	})
	return wideLanes
}

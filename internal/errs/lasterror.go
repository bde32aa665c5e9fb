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

package errs

import "sync"

var (
	lastErrMu sync.Mutex
	lastErr   = map[int64]string{}
)

// SetLast records msg as the most recent failure for the calling task,
// per §4.7. Called by the C ABI shims immediately before returning a
// non-zero Code.
func SetLast(msg string) {
	id := callerID()
	lastErrMu.Lock()
	lastErr[id] = msg
	lastErrMu.Unlock()
}

// Last returns the most recent failure message recorded for the calling
// task, or "" if none is set.
func Last() string {
	id := callerID()
	lastErrMu.Lock()
	msg := lastErr[id]
	lastErrMu.Unlock()
	return msg
}

// ClearLast erases the calling task's last-error slot.
func ClearLast() {
	id := callerID()
	lastErrMu.Lock()
	delete(lastErr, id)
	lastErrMu.Unlock()
}

// CallerID exposes callerID to the C ABI layer (cmd/libuubed), which keys
// its own borrowed-C-string cache by the same task identity so the string
// returned by get_last_error_message stays valid "until the next library
// call on the same task" per §4.7, matching this package's own slot.
func CallerID() int64 {
	return callerID()
}

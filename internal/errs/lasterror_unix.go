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

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly
// +build linux darwin freebsd netbsd openbsd dragonfly

package errs

import "golang.org/x/sys/unix"

// callerID identifies the OS thread a cgo call arrived on. The C ABI never
// migrates a call between OS threads mid-call (cgo pins the goroutine to its
// current M for the duration of the call), so keying the last-error slot by
// thread id gives each calling task in §4.7/§5 its own slot without needing
// an explicit handle parameter threaded through every FFI function.
func callerID() int64 {
	return int64(unix.Gettid())
}

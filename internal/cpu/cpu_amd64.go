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

//go:build amd64
// +build amd64

package cpu

import "golang.org/x/sys/cpu"

func init() {
	// SSE2 is guaranteed on every amd64 target Go supports, which is all
	// q64's word-at-a-time path needs (it operates on uint64 words, not
	// true SIMD registers); HasAVX2 is checked too since a machine that
	// reports it is certainly also SSE2-capable.
	probe = func() bool {
		return cpu.X86.HasAVX2 || cpu.X86.HasSSE2
	}
}

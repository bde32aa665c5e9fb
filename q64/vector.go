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

package q64

import (
	"encoding/binary"

	"github.com/uubed/uubed-go/internal/cpu"
)

// wideBlock is the number of input bytes processed per word-at-a-time
// iteration. 8 bytes is exactly four nibble-schedule cycles (each cycle
// being 2 input bytes / 4 output positions, per §3's "Nibble schedule"),
// so a block never straddles a phase boundary.
const wideBlock = 8

// minWideInput is the smallest input for which the wide path's fixed loop
// overhead is worth paying; below it, the scalar loop runs directly. This
// mirrors ion/zion/iguana's pattern of a vectorized path that only engages
// above a minimum chunk size, with everything else falling to the scalar
// fallback.
const minWideInput = wideBlock * 4

func hasWideLanes() bool {
	return cpu.HasWideLanes()
}

// encodeWide processes data in wideBlock-sized chunks using word-at-a-time
// (SIMD-within-a-register) nibble extraction instead of the scalar
// byte-at-a-time loop, in the spirit of internal/simd's lane
// reinterpretation helpers — adapted to a plain uint64 word since this
// module carries no hand-written assembly. It returns the number of input
// bytes it consumed; the caller (encode, in q64.go) runs the scalar loop
// over the remainder. Output is byte-identical to the pure-scalar path by
// construction: each word's bytes are extracted and translated exactly as
// the scalar loop would, just eight at a time.
func encodeWide(data, out []byte) int {
	n := len(data)
	i := 0
	for ; i+wideBlock <= n; i += wideBlock {
		w := binary.LittleEndian.Uint64(data[i : i+wideBlock])
		for j := 0; j < wideBlock; j++ {
			b := byte(w >> (8 * j))
			idx := i + j
			out[2*idx] = alphabets[(2*idx)&3][b>>4]
			out[2*idx+1] = alphabets[(2*idx+1)&3][b&0x0F]
		}
	}
	return i
}

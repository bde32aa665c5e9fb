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

// Package zorder implements the Morton (Z-order) interleave sketch of spec
// §4.4: pairwise bit-interleave successive input bytes, then Q64-encode.
// Nearby byte pairs produce interleaved values whose high-order bits agree,
// so a prefix of the Q64 string is an approximate spatial locality index.
package zorder

import "github.com/uubed/uubed-go/q64"

// MaxEmbeddingSize mirrors q64.MaxEmbeddingSize: Z-order has no additional
// size restriction of its own beyond what Q64 already accepts.
const MaxEmbeddingSize = q64.MaxEmbeddingSize

// spreadTable[b] places the 8 bits of b into the even bit positions of a
// 16-bit word (bit i of b lands at bit 2i of the result), leaving the odd
// positions zero. Interleaving two bytes a, b is then
// spreadTable[a] | (spreadTable[b] << 1). This precomputed-table approach
// mirrors internal/simd's bit-level lane reinterpretation style: a fixed
// table of bit-manipulation constants rather than a runtime bit-by-bit
// loop on the hot path.
var spreadTable [256]uint16

func init() {
	for b := 0; b < 256; b++ {
		var v uint16
		for bit := 0; bit < 8; bit++ {
			if b&(1<<bit) != 0 {
				v |= 1 << (2 * bit)
			}
		}
		spreadTable[b] = v
	}
}

// interleave returns the 16-bit Morton code for the byte pair (a, b): a's
// bits occupy the even positions, b's bits occupy the odd positions.
func interleave(a, b byte) uint16 {
	return spreadTable[a] | (spreadTable[b] << 1)
}

// Encode returns the Q64 string of the pairwise Morton interleave of emb.
// A trailing unpaired byte is interleaved with 0x00. Output length is
// 4 * ceil(len(emb)/2) Q64 characters.
func Encode(emb []byte) string {
	pairs := (len(emb) + 1) / 2
	payload := make([]byte, 2*pairs)
	for i := 0; i < pairs; i++ {
		a := emb[2*i]
		var b byte
		if 2*i+1 < len(emb) {
			b = emb[2*i+1]
		}
		m := interleave(a, b)
		payload[2*i] = byte(m >> 8)
		payload[2*i+1] = byte(m)
	}
	return q64.Encode(payload)
}

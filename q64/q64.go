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

// Package q64 implements the position-safe, four-alphabet nibble codec
// that every sketch in this module funnels its payload through at the
// boundary (see sketch/simhash, sketch/topk, sketch/zorder, sketch/mq64).
//
// Each output character is drawn from one of four disjoint 16-character
// alphabets selected by the output position modulo 4. Because a character's
// identity fixes its phase, no substring of a Q64 string can be mistaken
// for a valid encoding at a different alignment — the property that makes
// these strings safe to drop into a generic text index.
package q64

import "github.com/uubed/uubed-go/internal/errs"

// MaxEmbeddingSize is §3's declared input ceiling, reported by the C ABI's
// max_embedding_size. Encode, Decode and EncodeToBuffer do not check it.
const MaxEmbeddingSize = 16 * 1024 * 1024 // 16,777,216

// Encode returns the Q64 string for data: a total function that never
// fails, of length 2*len(data), whose byte at position p lies in
// alphabet[p mod 4].
func Encode(data []byte) string {
	out := make([]byte, 2*len(data))
	encode(data, out)
	return string(out)
}

// EncodeToBuffer writes Encode(data) as raw ASCII bytes into out starting at
// offset 0 and returns the number of bytes written. It never allocates. It
// fails with BufferTooSmall if len(out) < 2*len(data); bytes beyond the
// written prefix are left untouched.
func EncodeToBuffer(data []byte, out []byte) (int, error) {
	need := 2 * len(data)
	if len(out) < need {
		return 0, errs.TooSmall(need, len(out))
	}
	encode(data, out[:need])
	return need, nil
}

// encode dispatches to the vectorized word-at-a-time path when the process
// has wide-lane support and the input is large enough to amortize it,
// falling back to the scalar loop for the tail (or the whole input, on
// capability-probe failure or short input). Both paths must agree
// byte-for-byte; see q64_test.go's TestScalarVectorEquivalence.
func encode(data []byte, out []byte) {
	n := len(data)
	i := 0
	if n >= minWideInput && hasWideLanes() {
		i = encodeWide(data, out)
	}
	encodeScalarFrom(data, out, i, n)
}

// encodeScalarFrom runs the straight two-nibble-per-byte loop for input
// bytes [start, n), writing to out at the corresponding offset 2*start.
func encodeScalarFrom(data, out []byte, start, n int) {
	for i := start; i < n; i++ {
		b := data[i]
		out[2*i] = alphabets[(2*i)&3][b>>4]
		out[2*i+1] = alphabets[(2*i+1)&3][b&0x0F]
	}
}

// Decode is the inverse of Encode. It fails with a Q64 error if len(s) is
// odd, or if any character is not a Q64 character, or if a character's
// alphabet does not match its position modulo 4 (the phase check that
// enforces position-safety).
func Decode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errs.Q64At(-1)
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hiPos, loPos := 2*i, 2*i+1
		hiNibble, hiPhase, ok := lookup(s[hiPos])
		if !ok || hiPhase != hiPos&3 {
			return nil, errs.Q64At(hiPos)
		}
		loNibble, loPhase, ok := lookup(s[loPos])
		if !ok || loPhase != loPos&3 {
			return nil, errs.Q64At(loPos)
		}
		out[i] = byte(hiNibble<<4) | byte(loNibble)
	}
	return out, nil
}

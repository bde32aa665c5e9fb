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

// notQ64 is the reverseTable sentinel for "not a Q64 character", mirroring
// the dense-sentinel-array idiom ion/zion/iguana/error.go uses for its
// error-code table (a fixed-size array indexed by a small integer, with a
// reserved value standing in for "no such entry").
const notQ64 = 0xFF

// reverseEntry packs a decoded nibble value (low 4 bits) with the phase the
// character is legal at (bits 4-5); the high bit marks "not a Q64 character"
// when set, matching the notQ64 sentinel.
type reverseEntry = uint8

// reverseTable is indexed by character byte and gives the nibble value
// combined with the expected phase, or notQ64. Decoding looks up this table
// once per character and additionally checks the returned phase against
// position mod 4 — that second check is what enforces position-safety.
var reverseTable [256]reverseEntry

func init() {
	for i := range reverseTable {
		reverseTable[i] = notQ64
	}
	for phase := 0; phase < 4; phase++ {
		for nibble := 0; nibble < 16; nibble++ {
			c := alphabets[phase][nibble]
			reverseTable[c] = uint8(nibble) | uint8(phase<<4)
		}
	}
}

// lookup returns (nibble, phase, ok) for character c.
func lookup(c byte) (nibble, phase int, ok bool) {
	e := reverseTable[c]
	if e == notQ64 {
		return 0, 0, false
	}
	return int(e & 0x0F), int(e >> 4), true
}

// IsQ64Byte reports whether c is a member of any of the four Q64 alphabets.
// Exposed for FilterQ64-style boundary sanitization (see internal/errs).
func IsQ64Byte(c byte) bool {
	return reverseTable[c] != notQ64
}

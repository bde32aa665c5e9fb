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

// charset64 is the full 64-character working set, partitioned into four
// contiguous, disjoint 16-character blocks — one per alphabet phase. Any
// character's position in this string fixes both its nibble value (low 4
// bits of the index) and its phase (top 2 bits of the index), which is what
// lets the reverse-lookup table in table.go be built mechanically from it.
//
// ':' is reserved as the Mq64 segment delimiter (§6) and deliberately does
// not appear here.
const charset64 = "0123456789ABCDEF" + // phase 0
	"GHIJKLMNOPQRSTUV" + // phase 1
	"WXYZabcdefghijkl" + // phase 2
	"mnopqrstuvwxyz-_" // phase 3

// alphabets[p] is the 16-character block that must supply the character at
// any output position p' with p' mod 4 == p.
var alphabets [4][16]byte

func init() {
	for p := 0; p < 4; p++ {
		copy(alphabets[p][:], charset64[p*16:p*16+16])
	}
}

// Alphabet returns a copy of the 16-character alphabet for phase p (p mod 4).
func Alphabet(p int) [16]byte {
	return alphabets[p&3]
}

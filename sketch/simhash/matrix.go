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

package simhash

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// fixed SipHash key for projection-matrix generation. Any fixed key works;
// what matters per §4.2 "Determinism" is that it never changes between
// runs, processes, or platforms.
const (
	seedK0 uint64 = 0x5eed5eed5eed5eed
	seedK1 uint64 = 0xc0ffeec0ffeec0ff
)

// Matrix is the deterministic, seeded sign matrix of shape P x D described
// in spec §3 ("Projection matrix"): row j, column d holds +1 or -1. Entries
// are derived on demand from a SipHash-2-4 stream rather than stored
// densely, because P*D can reach 8,192 * 1,048,576 — storing one byte per
// entry would be bigger than most callers' actual embeddings.
//
// The open question in spec §9 ("SimHash quantization") is resolved here as
// sign-only (not ternary): each entry is exactly +1 or -1, taken from one
// bit of the SipHash stream. This is simpler than a ternary scheme and
// determinism — the only hard constraint — holds regardless of which
// quantization is chosen.
type Matrix struct {
	P, D int
}

// NewMatrix returns the deterministic matrix for shape (P, D). Construction
// is O(1): no entries are stored; DotSign recomputes each one on demand.
func NewMatrix(p, d int) Matrix {
	return Matrix{P: p, D: d}
}

// sign returns +1 or -1 for row j, column d.
func (m Matrix) sign(j, d int) int32 {
	idx := uint64(j)*uint64(m.D) + uint64(d)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], idx)
	h := siphash.Hash(seedK0, seedK1, buf[:])
	if h&1 == 0 {
		return 1
	}
	return -1
}

// DotSign returns the sign bit (true for >= 0) of the dot product of row j
// of m with emb, treating emb's bytes as unsigned magnitudes per §3.
func (m Matrix) DotSign(j int, emb []byte) bool {
	var sum int64
	for d, b := range emb {
		sum += int64(m.sign(j, d)) * int64(b)
	}
	return sum >= 0
}

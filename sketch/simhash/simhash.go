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

// Package simhash implements the signed-random-projection sketch of spec
// §4.2: reduce an embedding to P sign bits, pack them MSB-first, and
// Q64-encode the result.
package simhash

import (
	"github.com/uubed/uubed-go/internal/errs"
	"github.com/uubed/uubed-go/ints"
	"github.com/uubed/uubed-go/q64"
)

// MaxPlanes is the largest plane count Encode accepts (§3).
const MaxPlanes = 8192

// MaxEmbeddingSize is the largest embedding Encode accepts (§4.2 "Inputs &
// bounds").
const MaxEmbeddingSize = 1024 * 1024

// Cache is a task-local store of projection matrices keyed by (P, D). It is
// not safe for concurrent use from multiple goroutines — each goroutine
// (the batch driver's notion of a "task", see batch.Worker) should own one,
// exactly as §5 prescribes: "task-local; never shared mutably across
// tasks... eliminates the contention a single global cache would incur."
type Cache struct {
	m map[key]Matrix
}

type key struct{ p, d int }

// NewCache returns an empty, ready-to-use projection-matrix cache.
func NewCache() *Cache {
	return &Cache{m: make(map[key]Matrix)}
}

// matrix returns the cached matrix for (p, d), materializing (and
// memoizing) it on first use. Never mutated afterward, per spec §9's open
// question on lookup-table rebuilding: the matrix is fixed once derived.
func (c *Cache) matrix(p, d int) Matrix {
	k := key{p, d}
	if mat, ok := c.m[k]; ok {
		return mat
	}
	mat := NewMatrix(p, d)
	c.m[k] = mat
	return mat
}

// Encode returns the Q64 string for the sign pattern of M*emb, where M is
// the (P, len(emb)) projection matrix held in c.
func (c *Cache) Encode(emb []byte, p int) (string, error) {
	if p < 1 || p > MaxPlanes {
		return "", errs.BadParam("P")
	}
	if len(emb) < 1 || len(emb) > MaxEmbeddingSize {
		return "", errs.BadParam("emb")
	}
	mat := c.matrix(p, len(emb))

	packedLen := int(ints.ChunkCount(uint(p), uint(8)))
	packed := make([]byte, packedLen)
	for j := 0; j < p; j++ {
		if mat.DotSign(j, emb) {
			packed[j/8] |= 1 << (7 - uint(j%8))
		}
	}
	return q64.Encode(packed), nil
}

// Encode is the package-level convenience for one-shot callers that do not
// want to manage a Cache themselves (e.g. a single FFI call). It builds an
// ephemeral cache valid for this call only; callers making repeated calls
// with the same P should use a Cache (or batch.Worker, which owns one) to
// avoid redundant matrix materialization under load.
func Encode(emb []byte, p int) (string, error) {
	c := NewCache()
	return c.Encode(emb, p)
}

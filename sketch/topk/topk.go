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

// Package topk implements the k-largest-index sketch of spec §4.3: three
// selection strategies behind one adaptive entry point, all agreeing
// exactly (up to the tie-break rule) on the same (emb, k).
//
// The payload is a sequence of two-byte big-endian indices, not one byte
// per index — see DESIGN.md's "Top-K index width" entry for why the
// one-byte reading cannot satisfy the documented `len(Encode(emb,k)) ==
// 4*k` invariant and worked example simultaneously.
package topk

import (
	"runtime"
	"sort"

	"github.com/uubed/uubed-go/heap"
	"github.com/uubed/uubed-go/internal/errs"
	"github.com/uubed/uubed-go/q64"
)

// MaxK is the largest k Encode accepts (§4.3).
const MaxK = 100_000

// MaxEmbeddingSize is the largest embedding Encode accepts (§3).
const MaxEmbeddingSize = 16 * 1024 * 1024

// padIndex is the sentinel written for slots beyond len(emb) when k > len(emb).
const padIndex = 0xFFFF

// smallInputThreshold and the k/n ratio below pick the linear-scan
// strategy; chunkThreshold picks the chunked-parallel-merge strategy for
// large inputs with a small k. Both mirror the shape (not the exact
// numbers, which the source leaves as an implementation choice) of
// sorting/ktop.go's single-pass heap plus sorting/thread_pool.go's
// fan-out-then-merge.
const (
	smallInputThreshold = 256
	chunkThreshold      = 1 << 16 // 65,536
)

type candidate struct {
	value byte
	index int
}

// less implements the top-k ordering used by all three strategies:
// "larger" candidates (by value desc, then index asc) sort first. The
// bounded heaps are min-heaps over the reverse ordering (heapLess), so
// their root is the weakest member of the current top-k set, which is
// exactly what a bounded top-k heap needs to evict.
func less(a, b candidate) bool {
	if a.value != b.value {
		return a.value > b.value
	}
	return a.index < b.index
}

// Encode returns the Q64 string for the k largest-valued positions of emb,
// tie-broken by lower index, padded with padIndex when k > len(emb). It
// picks among the three strategies adaptively (see selectTopK) — this is
// the "optimized" entry point behind the C ABI's topk_encode_optimized.
func Encode(emb []byte, k int) (string, error) {
	return encodeWith(emb, k, selectTopK)
}

// EncodeReference always uses the single-pass linear-scan strategy,
// regardless of input size. It exists as the un-adaptive baseline behind
// the C ABI's topk_encode, so callers and tests can confirm the adaptive
// strategies in Encode agree with it on every (emb, k) — see §4.3's
// requirement that "the original and optimized strategies must yield
// identical results for the same (emb, k)".
func EncodeReference(emb []byte, k int) (string, error) {
	return encodeWith(emb, k, linearScan)
}

func encodeWith(emb []byte, k int, strategy func([]byte, int) []int) (string, error) {
	if k < 1 || k > MaxK {
		return "", errs.BadParam("k")
	}
	if len(emb) < 1 || len(emb) > MaxEmbeddingSize {
		return "", errs.TooLarge(MaxEmbeddingSize, len(emb))
	}

	indices := strategy(emb, k)

	payload := make([]byte, 2*k)
	for i, idx := range indices {
		var v int
		if idx < 0 {
			v = padIndex
		} else {
			v = idx
		}
		payload[2*i] = byte(v >> 8)
		payload[2*i+1] = byte(v)
	}
	return q64.Encode(payload), nil
}

// selectTopK picks the strategy per §4.3's adaptive rule and returns k
// indices (-1 standing in for "pad"), sorted by (value desc, index asc).
func selectTopK(emb []byte, k int) []int {
	n := len(emb)
	switch {
	case n <= smallInputThreshold || k*2 >= n:
		return linearScan(emb, k)
	case n >= chunkThreshold && k < n/8 && runtime.GOMAXPROCS(0) > 1:
		return chunkedParallel(emb, k)
	default:
		return boundedHeap(emb, k)
	}
}

// linearScan is the small-input strategy: collect every index, sort by the
// tie-break rule, take the first k (padding if there are fewer than k).
func linearScan(emb []byte, k int) []int {
	cands := make([]candidate, len(emb))
	for i, b := range emb {
		cands[i] = candidate{value: b, index: i}
	}
	sort.Slice(cands, func(i, j int) bool { return less(cands[i], cands[j]) })
	return topIndices(cands, k)
}

// boundedHeap is the medium-input strategy: a capacity-k min-heap (ordered
// by heapLess, so the root is the current weakest member of the top-k set)
// built with heap.PushSlice/FixSlice, the same generic primitives
// sorting/ktop.go uses to drive its record heap.
func boundedHeap(emb []byte, k int) []int {
	h := newTopHeap(k)
	for i, b := range emb {
		h.offer(candidate{value: b, index: i})
	}
	return h.drain(k)
}

// chunkedParallel is the large-input, small-k strategy: partition emb into
// cache-sized chunks, run boundedHeap per chunk concurrently, then merge
// the per-chunk heaps into one global heap of capacity k. Fan-out/merge
// shape is grounded on sorting/thread_pool.go's worker-request pattern,
// simplified here to a fixed WaitGroup fan-out since each chunk is an
// independent, order-preserving unit of work.
func chunkedParallel(emb []byte, k int) []int {
	const l2ChunkBytes = 256 * 1024 // fits comfortably in a typical L2 cache
	workers := runtime.GOMAXPROCS(0)
	chunkSize := (len(emb) + workers - 1) / workers
	if chunkSize > l2ChunkBytes {
		chunkSize = l2ChunkBytes
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	numChunks := (len(emb) + chunkSize - 1) / chunkSize

	results := make([][]candidate, numChunks)
	done := make(chan int, numChunks)
	for ci, start := 0, 0; start < len(emb); ci, start = ci+1, start+chunkSize {
		end := start + chunkSize
		if end > len(emb) {
			end = len(emb)
		}
		go func(start, end, ci int) {
			h := newTopHeap(k)
			for i := start; i < end; i++ {
				h.offer(candidate{value: emb[i], index: i})
			}
			results[ci] = h.snapshot()
			done <- ci
		}(start, end, ci)
	}
	for range results {
		<-done
	}

	global := newTopHeap(k)
	for _, cands := range results {
		for _, c := range cands {
			global.offer(c)
		}
	}
	return global.drain(k)
}

// topIndices converts a value-sorted candidate slice into exactly k index
// slots, padding with -1 if cands is shorter than k.
func topIndices(cands []candidate, k int) []int {
	out := make([]int, k)
	for i := 0; i < k; i++ {
		if i < len(cands) {
			out[i] = cands[i].index
		} else {
			out[i] = -1
		}
	}
	return out
}

// topHeap is a bounded min-heap (by heapLess, the reverse of the top-k
// "less" ordering) of capacity k, built directly on
// heap.PushSlice/FixSlice/PopSlice.
type topHeap struct {
	cap int
	buf []candidate
}

func newTopHeap(cap int) *topHeap {
	return &topHeap{cap: cap, buf: make([]candidate, 0, cap)}
}

// heapLess orders the *weakest* candidate to the root, so offer can evict
// it in O(log k) when a stronger candidate arrives.
func heapLess(a, b candidate) bool { return !less(a, b) }

func (h *topHeap) offer(c candidate) {
	if len(h.buf) < h.cap {
		heap.PushSlice(&h.buf, c, heapLess)
		return
	}
	if less(c, h.buf[0]) {
		h.buf[0] = c
		heap.FixSlice(h.buf, 0, heapLess)
	}
}

// snapshot returns the heap's current contents without consuming it.
func (h *topHeap) snapshot() []candidate {
	out := make([]candidate, len(h.buf))
	copy(out, h.buf)
	return out
}

// drain empties the heap into exactly k index slots in top-k order.
func (h *topHeap) drain(k int) []int {
	n := len(h.buf)
	cands := make([]candidate, n)
	for i := n - 1; i >= 0; i-- {
		cands[i] = heap.PopSlice(&h.buf, heapLess)
	}
	return topIndices(cands, k)
}

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

// Package bufview is the buffer-protocol surface of spec §4.8: every
// codec accepts its input as a plain []byte view (Go's own
// contiguous-byte-view-with-length, the language-neutral buffer protocol's
// natural Go shape) and writes its output into a caller-supplied []byte
// view when one is given with enough capacity, falling back to a freshly
// owned slice otherwise.
//
// The caller-supplied-dst convention is grounded on ion/zion/decoder.go's
// Decoder.Decode, which takes a dst []byte and only grows it when its
// capacity is insufficient. This package is a thin layer over q64 and
// sketch/*; it shares their core rather than duplicating it (per §4.8,
// "Expected to be layered on the C ABI or share its core").
package bufview

import (
	"github.com/uubed/uubed-go/q64"
	"github.com/uubed/uubed-go/sketch/mq64"
	"github.com/uubed/uubed-go/sketch/simhash"
	"github.com/uubed/uubed-go/sketch/topk"
	"github.com/uubed/uubed-go/sketch/zorder"
)

// intoBuf copies s into dst if dst has enough capacity, otherwise returns
// a freshly allocated slice; the caller-dst path never allocates.
func intoBuf(s string, dst []byte) []byte {
	if cap(dst) >= len(s) {
		dst = dst[:len(s)]
	} else {
		dst = make([]byte, len(s))
	}
	copy(dst, s)
	return dst
}

func reuseBytes(data, dst []byte) []byte {
	if cap(dst) >= len(data) {
		dst = dst[:len(data)]
	} else {
		dst = make([]byte, len(data))
	}
	copy(dst, data)
	return dst
}

// Q64Encode writes the Q64 encoding of emb as raw ASCII bytes into dst
// when cap(dst) >= 2*len(emb) (no allocation), otherwise returns a freshly
// allocated slice.
func Q64Encode(emb, dst []byte) []byte {
	need := 2 * len(emb)
	if cap(dst) >= need {
		out := dst[:need]
		// need already checked: EncodeToBuffer cannot fail here.
		_, _ = q64.EncodeToBuffer(emb, out)
		return out
	}
	return []byte(q64.Encode(emb))
}

// Q64Decode recovers the bytes behind a Q64 view, copying the result into
// dst when it has enough capacity.
func Q64Decode(view, dst []byte) ([]byte, error) {
	data, err := q64.Decode(string(view))
	if err != nil {
		return nil, err
	}
	return reuseBytes(data, dst), nil
}

// SimHashEncode writes the Q64 encoding of emb's P-plane SimHash sketch.
func SimHashEncode(emb []byte, p int, dst []byte) ([]byte, error) {
	s, err := simhash.Encode(emb, p)
	if err != nil {
		return nil, err
	}
	return intoBuf(s, dst), nil
}

// TopKEncode writes the Q64 encoding of emb's k largest-valued positions
// using the single-pass reference strategy (the un-adaptive baseline
// behind the C ABI's topk_encode).
func TopKEncode(emb []byte, k int, dst []byte) ([]byte, error) {
	s, err := topk.EncodeReference(emb, k)
	if err != nil {
		return nil, err
	}
	return intoBuf(s, dst), nil
}

// TopKEncodeOptimized is TopKEncode but picks among topk's adaptive
// strategies (the behavior behind the C ABI's topk_encode_optimized).
func TopKEncodeOptimized(emb []byte, k int, dst []byte) ([]byte, error) {
	s, err := topk.Encode(emb, k)
	if err != nil {
		return nil, err
	}
	return intoBuf(s, dst), nil
}

// ZorderEncode writes the Q64 encoding of emb's pairwise Morton interleave.
func ZorderEncode(emb []byte, dst []byte) []byte {
	return intoBuf(zorder.Encode(emb), dst)
}

// Mq64Encode writes the colon-joined hierarchical Q64 encoding of emb. A
// nil cuts uses mq64.DefaultCuts(len(emb)).
func Mq64Encode(emb []byte, cuts []int, dst []byte) ([]byte, error) {
	s, err := mq64.Encode(emb, cuts)
	if err != nil {
		return nil, err
	}
	return intoBuf(s, dst), nil
}

// ViewEncoder encodes one input view, writing through scratch when it has
// room. The returned slice aliases scratch's backing array when scratch
// was large enough, so it is only valid until the next call using the
// same scratch — EncodeBatch copies it out before reusing scratch.
type ViewEncoder func(input []byte, scratch []byte) ([]byte, error)

// EncodeBatch runs encode across inputs, reusing a single growable scratch
// buffer across items (per §4.8's batch variant) instead of letting every
// item allocate its own intermediate buffer, then copies each item's
// result into its own owned slice before returning — the returned slices
// must outlive scratch, unlike a single EncodeInto-style call.
func EncodeBatch(inputs [][]byte, encode ViewEncoder) ([][]byte, error) {
	var scratch []byte
	out := make([][]byte, len(inputs))
	for i, in := range inputs {
		view, err := encode(in, scratch)
		if err != nil {
			return nil, err
		}
		if cap(view) > cap(scratch) {
			scratch = view[:len(view):cap(view)]
		}
		owned := make([]byte, len(view))
		copy(owned, view)
		out[i] = owned
	}
	return out, nil
}

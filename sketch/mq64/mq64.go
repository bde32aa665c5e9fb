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

// Package mq64 implements the hierarchical, colon-delimited multi-prefix
// encoding of spec §4.5: Q64-encode a series of progressive prefixes of an
// embedding and join them with ':', a character excluded from every Q64
// alphabet (see q64.IsQ64Byte) so it can never be confused with payload.
package mq64

import (
	"strings"

	"github.com/uubed/uubed-go/internal/errs"
	"github.com/uubed/uubed-go/q64"
)

const delimiter = ":"

// DefaultCuts returns the default cut schedule for an embedding of length
// n: successive powers of two up to n, always ending at n itself so the
// final segment is a full, losslessly decodable encoding.
func DefaultCuts(n int) []int {
	var cuts []int
	for c := 1; c < n; c *= 2 {
		cuts = append(cuts, c)
	}
	if len(cuts) == 0 || cuts[len(cuts)-1] != n {
		cuts = append(cuts, n)
	}
	return cuts
}

// Encode returns the colon-joined Q64 encodings of emb's prefixes cut at
// each point in cuts (or DefaultCuts(len(emb)) if cuts is nil). cuts must be
// strictly increasing and its last element must equal len(emb); the final
// segment then covers the whole input and is sufficient to decode it.
func Encode(emb []byte, cuts []int) (string, error) {
	if cuts == nil {
		cuts = DefaultCuts(len(emb))
	}
	if len(cuts) == 0 {
		return "", errs.BadParam("cuts")
	}
	prev := 0
	for _, c := range cuts {
		if c <= prev || c > len(emb) {
			return "", errs.BadParam("cuts")
		}
		prev = c
	}
	if cuts[len(cuts)-1] != len(emb) {
		return "", errs.BadParam("cuts")
	}

	segs := make([]string, len(cuts))
	for i, c := range cuts {
		segs[i] = q64.Encode(emb[:c])
	}
	return strings.Join(segs, delimiter), nil
}

// Decode recovers the original embedding from an Mq64 string by taking the
// longest (final) segment and Q64-decoding it, per §4.5's "Decode".
func Decode(s string) ([]byte, error) {
	segs := strings.Split(s, delimiter)
	longest := segs[0]
	for _, seg := range segs[1:] {
		if len(seg) > len(longest) {
			longest = seg
		}
	}
	return q64.Decode(longest)
}

// Prefixes returns every segment of s except the final one, each a valid
// Q64 string usable as a coarse-to-fine lookup prefix per §4.5.
func Prefixes(s string) []string {
	segs := strings.Split(s, delimiter)
	if len(segs) <= 1 {
		return nil
	}
	return segs[:len(segs)-1]
}

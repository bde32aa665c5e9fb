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

package mq64

import (
	"bytes"
	"strings"
	"testing"
)

func TestFinalSegmentRecoversInput(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	s, err := Encode(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decode(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("Decode = %v, want %v", out, in)
	}
}

func TestDefaultCutsEndsAtN(t *testing.T) {
	cuts := DefaultCuts(5)
	if cuts[len(cuts)-1] != 5 {
		t.Fatalf("last cut = %d, want 5", cuts[len(cuts)-1])
	}
	for i := 1; i < len(cuts); i++ {
		if cuts[i] <= cuts[i-1] {
			t.Fatalf("cuts not strictly increasing: %v", cuts)
		}
	}
}

func TestCustomCuts(t *testing.T) {
	in := make([]byte, 10)
	for i := range in {
		in[i] = byte(i)
	}
	s, err := Encode(in, []int{3, 7, 10})
	if err != nil {
		t.Fatal(err)
	}
	segs := strings.Split(s, delimiter)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if len(segs[0]) != 6 || len(segs[1]) != 14 || len(segs[2]) != 20 {
		t.Fatalf("segment lengths wrong: %v", []int{len(segs[0]), len(segs[1]), len(segs[2])})
	}
	out, err := Decode(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("Decode = %v, want %v", out, in)
	}
}

func TestInvalidCuts(t *testing.T) {
	in := make([]byte, 5)
	if _, err := Encode(in, []int{3, 2, 5}); err == nil {
		t.Error("expected error for non-increasing cuts")
	}
	if _, err := Encode(in, []int{3, 4}); err == nil {
		t.Error("expected error when final cut does not cover the whole input")
	}
}

func TestPrefixes(t *testing.T) {
	in := make([]byte, 4)
	s, err := Encode(in, []int{2, 4})
	if err != nil {
		t.Fatal(err)
	}
	prefixes := Prefixes(s)
	if len(prefixes) != 1 {
		t.Fatalf("expected 1 coarse prefix, got %d", len(prefixes))
	}
}

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

package bufview

import (
	"testing"

	"github.com/uubed/uubed-go/q64"
)

func TestQ64EncodeReusesDst(t *testing.T) {
	emb := []byte{1, 2, 3, 4}
	dst := make([]byte, 0, 16)
	out := Q64Encode(emb, dst)
	if &out[0] != &dst[:1][0] {
		t.Fatal("Q64Encode did not reuse dst's backing array when capacity sufficed")
	}
	if string(out) != q64.Encode(emb) {
		t.Fatalf("Q64Encode(emb, dst) = %q, want %q", out, q64.Encode(emb))
	}
}

func TestQ64EncodeGrowsWhenTooSmall(t *testing.T) {
	emb := []byte{1, 2, 3, 4}
	dst := make([]byte, 0, 2)
	out := Q64Encode(emb, dst)
	if string(out) != q64.Encode(emb) {
		t.Fatalf("Q64Encode(emb, dst) = %q, want %q", out, q64.Encode(emb))
	}
}

func TestQ64RoundTrip(t *testing.T) {
	emb := []byte("hello, buffer protocol")
	encoded := Q64Encode(emb, nil)
	decoded, err := Q64Decode(encoded, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(decoded) != string(emb) {
		t.Fatalf("round trip = %q, want %q", decoded, emb)
	}
}

func TestZorderEncode(t *testing.T) {
	emb := []byte{0xAA, 0x55, 0x0F}
	out := ZorderEncode(emb, nil)
	if len(out) == 0 {
		t.Fatal("ZorderEncode returned empty output")
	}
}

func TestEncodeBatchReusesScratchAndOwnsResults(t *testing.T) {
	inputs := [][]byte{
		{1, 2},
		{3, 4, 5},
		{6},
	}
	results, err := EncodeBatch(inputs, func(in, scratch []byte) ([]byte, error) {
		return Q64Encode(in, scratch), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, in := range inputs {
		if string(results[i]) != q64.Encode(in) {
			t.Fatalf("index %d: got %q, want %q", i, results[i], q64.Encode(in))
		}
	}
	// results must be independently owned, not aliasing one shared buffer
	results[0][0] = 'X'
	if results[1][0] == 'X' {
		t.Fatal("EncodeBatch results alias a shared buffer")
	}
}

func TestEncodeBatchPropagatesError(t *testing.T) {
	inputs := [][]byte{{1}, {2}}
	_, err := EncodeBatch(inputs, func(in, scratch []byte) ([]byte, error) {
		return nil, errBoom
	})
	if err != errBoom {
		t.Fatalf("got %v, want errBoom", err)
	}
}

var errBoom = testError("boom")

type testError string

func (e testError) Error() string { return string(e) }

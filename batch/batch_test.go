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

package batch

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/uubed/uubed-go/q64"
)

func TestOrderPreserved(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	inputs := make([][]byte, 50)
	want := make([]string, 50)
	for i := range inputs {
		b := make([]byte, 1+rng.Intn(20))
		rng.Read(b)
		inputs[i] = b
		want[i] = q64.Encode(b)
	}

	got, err := parallelEncodeN(inputs, func(_ *Worker, in []byte) (string, error) {
		return q64.Encode(in), nil
	}, 8)
	if err != nil {
		t.Fatalf("ParallelEncode: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFirstErrorByIndex(t *testing.T) {
	inputs := make([][]byte, 20)
	for i := range inputs {
		inputs[i] = []byte{byte(i)}
	}
	boom := errors.New("boom")

	_, err := parallelEncodeN(inputs, func(_ *Worker, in []byte) (string, error) {
		if in[0] == 3 || in[0] == 10 {
			return "", boom
		}
		return q64.Encode(in), nil
	}, 4)
	if err == nil {
		t.Fatal("expected an error")
	}
	var itemErr *ItemError
	if !errors.As(err, &itemErr) {
		t.Fatalf("expected *ItemError, got %T", err)
	}
	if itemErr.Index != 3 {
		t.Fatalf("expected first error at index 3, got %d", itemErr.Index)
	}
}

func TestEmptyInput(t *testing.T) {
	got, err := ParallelEncode(nil, func(_ *Worker, in []byte) (string, error) {
		return "", nil
	})
	if err != nil || got != nil {
		t.Fatalf("ParallelEncode(nil) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestBufferPool(t *testing.T) {
	p := NewPool(2)
	a := p.Acquire(100)
	if cap(a) < 100 {
		t.Fatalf("cap(a) = %d, want >= 100", cap(a))
	}
	b := p.Acquire(100)
	c := p.Acquire(100)
	p.Release(a)
	p.Release(b)
	p.Release(c) // pool is at max (2); this release should be dropped

	if p.count > p.max {
		t.Fatalf("pool retained %d buffers, max is %d", p.count, p.max)
	}
}

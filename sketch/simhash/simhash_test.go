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
	"errors"
	"math/rand"
	"testing"

	"github.com/uubed/uubed-go/internal/errs"
)

func TestLength(t *testing.T) {
	emb := make([]byte, 32)
	for _, p := range []int{1, 7, 8, 9, 64, 100} {
		s, err := Encode(emb, p)
		if err != nil {
			t.Fatalf("Encode(p=%d): %v", p, err)
		}
		want := 2 * ((p + 7) / 8)
		if len(s) != want {
			t.Errorf("p=%d: len(s) = %d, want %d", p, len(s), want)
		}
	}
}

func TestDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	emb := make([]byte, 48)
	rng.Read(emb)

	a, err := Encode(emb, 64)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(emb, 64)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("repeated calls disagree: %q vs %q", a, b)
	}

	c := NewCache()
	d1, _ := c.Encode(emb, 64)
	d2, _ := c.Encode(emb, 64)
	if d1 != d2 || d1 != a {
		t.Fatalf("cached calls disagree with uncached: %q %q %q", a, d1, d2)
	}
}

func TestInvalidParameters(t *testing.T) {
	emb := make([]byte, 8)
	if _, err := Encode(emb, 0); err == nil {
		t.Error("expected error for P=0")
	}
	if _, err := Encode(emb, MaxPlanes+1); err == nil {
		t.Error("expected error for P > max")
	}
	if _, err := Encode(nil, 8); err == nil {
		t.Error("expected error for empty embedding")
	}
}

func TestEmbeddingBoundIsInvalidParameter(t *testing.T) {
	// §4.2 "Failure modes": |emb| out of bounds is InvalidParameter, like P
	// out of bounds — unlike Top-K, where the same shape of check is a
	// ValidationError.
	_, err := Encode(nil, 8)
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errs.Error, got %T", err)
	}
	if e.Code != errs.InvalidParameter {
		t.Fatalf("Code = %v, want InvalidParameter", e.Code)
	}
}

func TestCacheReusesMatrix(t *testing.T) {
	c := NewCache()
	m1 := c.matrix(16, 32)
	m2 := c.matrix(16, 32)
	if m1 != m2 {
		t.Fatal("cache should return the identical matrix value for a repeated (P, D) key")
	}
}

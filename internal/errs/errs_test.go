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

package errs

import "testing"

func TestClampK(t *testing.T) {
	cases := []struct{ k, max, want int }{
		{0, 100, 1},
		{-5, 100, 1},
		{50, 100, 50},
		{1000, 100, 100},
	}
	for _, c := range cases {
		if got := ClampK(c.k, c.max); got != c.want {
			t.Errorf("ClampK(%d, %d) = %d, want %d", c.k, c.max, got, c.want)
		}
	}
}

func TestFilterQ64(t *testing.T) {
	isAlnum := func(b byte) bool {
		return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
	}
	got := FilterQ64("ab!12:cd#", isAlnum)
	want := "ab12:cd"
	if got != want {
		t.Errorf("FilterQ64 = %q, want %q", got, want)
	}
}

func TestLastErrorSlot(t *testing.T) {
	ClearLast()
	if Last() != "" {
		t.Fatalf("expected empty last-error slot, got %q", Last())
	}
	SetLast("boom")
	if Last() != "boom" {
		t.Fatalf("Last() = %q, want %q", Last(), "boom")
	}
	ClearLast()
	if Last() != "" {
		t.Fatalf("ClearLast did not clear slot, got %q", Last())
	}
}

func TestErrorMessages(t *testing.T) {
	if e := Q64At(4); e.Error() != "q64: invalid character at position 4" {
		t.Errorf("unexpected message: %s", e.Error())
	}
	if e := Q64At(-1); e.Error() != "q64: odd-length input" {
		t.Errorf("unexpected message: %s", e.Error())
	}
	if e := TooSmall(8, 7); e.Error() != "buffer too small: need 8 bytes, have 7" {
		t.Errorf("unexpected message: %s", e.Error())
	}
	if e := BadParam("k"); e.Error() != `invalid parameter "k"` {
		t.Errorf("unexpected message: %s", e.Error())
	}
}

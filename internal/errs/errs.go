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

// Package errs implements the closed error taxonomy shared by every codec
// in the module and by the C ABI surface, which needs the numeric Code
// values to be stable across the FFI boundary.
package errs

import "fmt"

// Code is one of the fixed error kinds exposed across the C ABI. The
// numeric values are part of the wire contract: do not renumber them.
type Code uint32

const (
	Success          Code = 0
	Q64              Code = 1
	SimHash          Code = 2
	TopK             Code = 3
	ZOrder           Code = 4
	Validation       Code = 5
	Memory           Code = 6
	Computation      Code = 7
	InvalidParameter Code = 8
	BufferTooSmall   Code = 9
	Unknown          Code = 10
	codeCount             = 11
)

var names = [codeCount]string{
	Success:          "success",
	Q64:              "q64 codec error",
	SimHash:          "simhash error",
	TopK:             "top-k error",
	ZOrder:           "z-order error",
	Validation:       "validation error",
	Memory:           "memory error",
	Computation:      "computation error",
	InvalidParameter: "invalid parameter",
	BufferTooSmall:   "buffer too small",
	Unknown:          "unknown error",
}

func (c Code) String() string {
	if int(c) < len(names) && names[c] != "" {
		return names[c]
	}
	return "unrecognized error code"
}

// Error is the typed failure value returned internally by every codec.
// The FFI shims translate it to a Code plus a message stashed in the
// per-thread last-error slot; Go callers can use errors.As to recover it.
type Error struct {
	Code Code

	// Position is the offending Q64 string position (Code == Q64), or -1 for
	// an odd-length Q64 input; it is unused (0) for other codes.
	Position int
	// Param names the offending parameter (Code == InvalidParameter), or "".
	Param string
	// Want/Got describe a size mismatch (Code == BufferTooSmall or Validation).
	Want, Got int

	Err error
}

func (e *Error) Error() string {
	switch e.Code {
	case Q64:
		if e.Position >= 0 {
			return fmt.Sprintf("q64: invalid character at position %d", e.Position)
		}
		return "q64: odd-length input"
	case BufferTooSmall:
		return fmt.Sprintf("buffer too small: need %d bytes, have %d", e.Want, e.Got)
	case InvalidParameter:
		return fmt.Sprintf("invalid parameter %q", e.Param)
	case Validation:
		return fmt.Sprintf("validation error: limit %d, got %d", e.Want, e.Got)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Q64At reports a decode failure at a specific output position, or an odd
// input length when position is negative.
func Q64At(position int) *Error {
	return &Error{Code: Q64, Position: position}
}

// TooSmall reports an output buffer shorter than the required size.
func TooSmall(want, got int) *Error {
	return &Error{Code: BufferTooSmall, Want: want, Got: got}
}

// BadParam reports a zero, out-of-range, or null parameter.
func BadParam(name string) *Error {
	return &Error{Code: InvalidParameter, Param: name}
}

// TooLarge reports an input exceeding one of the §3 size maxima.
func TooLarge(limit, got int) *Error {
	return &Error{Code: Validation, Want: limit, Got: got}
}

// ClampK clamps k into [1, maxK], the documented boundary convenience from
// spec §7 ("Recovery") — not part of the core contract, only a helper for
// callers that would rather clamp than handle InvalidParameter.
func ClampK(k, maxK int) int {
	if k < 1 {
		return 1
	}
	if k > maxK {
		return maxK
	}
	return k
}

// FilterQ64 drops every byte from s that is not a member of any of the four
// Q64 alphabets (or the ':' delimiter used by Mq64), so a caller can sanitize
// input scraped from a larger text blob before calling Decode. This is a
// boundary convenience, not part of the core contract.
func FilterQ64(s string, isQ64Byte func(byte) bool) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ':' || isQ64Byte(c) {
			out = append(out, c)
		}
	}
	return string(out)
}

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

// Command libuubed builds the cgo C ABI surface of spec §4.7: every codec
// exported under a plain C calling convention, owned outputs returned
// through out-parameters, and a per-task last-error slot populated on
// failure. No file in the retrieved corpus exports a cgo C ABI, so this
// package follows ordinary cgo convention rather than a teacher file; its
// behavior is a thin translation of q64/sketch/internal/errs, which are
// grounded elsewhere (see DESIGN.md).
//
// Build with `go build -buildmode=c-shared` (or c-archive) to produce
// libuubed.so/.h for non-Go callers; `go build` alone produces an unused
// binary since main does nothing on its own.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	uubed "github.com/uubed/uubed-go"
	"github.com/uubed/uubed-go/internal/cpu"
	"github.com/uubed/uubed-go/internal/errs"
	"github.com/uubed/uubed-go/q64"
	"github.com/uubed/uubed-go/sketch/simhash"
	"github.com/uubed/uubed-go/sketch/topk"
	"github.com/uubed/uubed-go/sketch/zorder"
)

func main() {}

// code translates a Go error into the §7 numeric code and, on failure,
// populates the calling task's last-error slot with a human message.
func code(err error) C.int {
	if err == nil {
		return C.int(errs.Success)
	}
	var e *errs.Error
	if errors.As(err, &e) {
		errs.SetLast(e.Error())
		return C.int(e.Code)
	}
	errs.SetLast(err.Error())
	return C.int(errs.Unknown)
}

// cBytes views a C buffer as a Go byte slice without copying. The slice is
// only valid for the duration of the call; callers must not retain it.
func cBytes(ptr *C.uchar, n C.size_t) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), int(n))
}

func cString(ptr *C.char, n C.size_t) string {
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), int(n)))
}

//export q64_encode
func q64_encode(embPtr *C.uchar, embLen C.size_t, out **C.char) C.int {
	if out == nil {
		return code(errs.BadParam("out"))
	}
	s := q64.Encode(cBytes(embPtr, embLen))
	*out = C.CString(s)
	return code(nil)
}

//export q64_decode
func q64_decode(q64Ptr *C.char, q64Len C.size_t, outPtr **C.uchar, outLen *C.size_t) C.int {
	if outPtr == nil || outLen == nil {
		return code(errs.BadParam("out"))
	}
	data, err := q64.Decode(cString(q64Ptr, q64Len))
	if err != nil {
		return code(err)
	}
	if len(data) == 0 {
		*outPtr = nil
		*outLen = 0
		return code(nil)
	}
	*outPtr = (*C.uchar)(C.CBytes(data))
	*outLen = C.size_t(len(data))
	return code(nil)
}

//export q64_encode_to_buffer
func q64_encode_to_buffer(embPtr *C.uchar, embLen C.size_t, outPtr *C.char, outCap C.size_t, written *C.size_t) C.int {
	if written == nil {
		return code(errs.BadParam("written"))
	}
	emb := cBytes(embPtr, embLen)
	out := unsafe.Slice((*byte)(unsafe.Pointer(outPtr)), int(outCap))
	n, err := q64.EncodeToBuffer(emb, out)
	if err != nil {
		return code(err)
	}
	*written = C.size_t(n)
	return code(nil)
}

//export simhash_encode
func simhash_encode(embPtr *C.uchar, embLen C.size_t, planes C.int, out **C.char) C.int {
	if out == nil {
		return code(errs.BadParam("out"))
	}
	s, err := simhash.Encode(cBytes(embPtr, embLen), int(planes))
	if err != nil {
		return code(err)
	}
	*out = C.CString(s)
	return code(nil)
}

//export topk_encode
func topk_encode(embPtr *C.uchar, embLen C.size_t, k C.int, out **C.char) C.int {
	if out == nil {
		return code(errs.BadParam("out"))
	}
	s, err := topk.EncodeReference(cBytes(embPtr, embLen), int(k))
	if err != nil {
		return code(err)
	}
	*out = C.CString(s)
	return code(nil)
}

//export topk_encode_optimized
func topk_encode_optimized(embPtr *C.uchar, embLen C.size_t, k C.int, out **C.char) C.int {
	if out == nil {
		return code(errs.BadParam("out"))
	}
	s, err := topk.Encode(cBytes(embPtr, embLen), int(k))
	if err != nil {
		return code(err)
	}
	*out = C.CString(s)
	return code(nil)
}

//export zorder_encode
func zorder_encode(embPtr *C.uchar, embLen C.size_t, out **C.char) C.int {
	if out == nil {
		return code(errs.BadParam("out"))
	}
	if n := int(embLen); n < 1 || n > zorder.MaxEmbeddingSize {
		return code(errs.TooLarge(zorder.MaxEmbeddingSize, n))
	}
	*out = C.CString(zorder.Encode(cBytes(embPtr, embLen)))
	return code(nil)
}

//export free_string
func free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

//export free_bytes
func free_bytes(b *C.uchar) {
	C.free(unsafe.Pointer(b))
}

// lastCStr caches the C string handed out by get_last_error_message, keyed
// by the same task identity internal/errs uses for the slot itself, so the
// borrowed pointer stays valid "until the next library call on the same
// task" per §4.7 without leaking one C allocation per failed call.
var (
	lastCStrMu sync.Mutex
	lastCStr   = map[int64]*C.char{}
)

func replaceLastCStr(id int64, s *C.char) {
	lastCStrMu.Lock()
	defer lastCStrMu.Unlock()
	if prev, ok := lastCStr[id]; ok {
		C.free(unsafe.Pointer(prev))
	}
	if s == nil {
		delete(lastCStr, id)
		return
	}
	lastCStr[id] = s
}

//export get_last_error_message
func get_last_error_message() *C.char {
	id := errs.CallerID()
	msg := errs.Last()
	if msg == "" {
		replaceLastCStr(id, nil)
		return nil
	}
	c := C.CString(msg)
	replaceLastCStr(id, c)
	return c
}

//export clear_last_error
func clear_last_error() {
	errs.ClearLast()
	replaceLastCStr(errs.CallerID(), nil)
}

//export get_version
func get_version() *C.char {
	return C.CString(uubed.Version)
}

//export has_simd_support
func has_simd_support() C.int {
	if cpu.HasWideLanes() {
		return 1
	}
	return 0
}

//export max_embedding_size
func max_embedding_size() C.longlong {
	return C.longlong(q64.MaxEmbeddingSize)
}

//export max_k_value
func max_k_value() C.longlong {
	return C.longlong(topk.MaxK)
}

//export max_simhash_planes
func max_simhash_planes() C.longlong {
	return C.longlong(simhash.MaxPlanes)
}

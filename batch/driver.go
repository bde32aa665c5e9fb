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

// Package batch implements the parallel fan-out driver of spec §4.6: run
// one encoder across many inputs with a fixed worker pool, each worker
// owning its own scratch buffer pool and SimHash projection cache so no
// shared mutable state is ever touched from more than one goroutine.
//
// The work-stealing shape (workers pull the next unclaimed index rather
// than being handed a fixed static range) and the "first error wins, all
// partial output discarded" abort policy are both grounded on
// sorting/thread_pool.go's request-queue worker loop, generalized from
// sort-range requests to arbitrary per-item encode closures.
package batch

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/uubed/uubed-go/sketch/simhash"
)

func numWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// Worker is the per-task state ParallelEncode hands to each call of an
// Encoder: a scratch buffer pool and a SimHash projection-matrix cache,
// both task-local per §5 ("eliminates the contention a single global cache
// would incur").
type Worker struct {
	Pool    *Pool
	SimHash *simhash.Cache
}

func newWorker() *Worker {
	return &Worker{Pool: NewPool(DefaultPoolCapacity), SimHash: simhash.NewCache()}
}

// Encoder encodes one input, using w for scratch space and/or the SimHash
// cache as needed.
type Encoder func(w *Worker, input []byte) (string, error)

// ItemError wraps a single batch item's failure with its zero-based input
// index and a correlation id, so a caller can locate which input failed
// and cross-reference it in logs without re-running the batch.
type ItemError struct {
	Index int
	ID    uuid.UUID
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("batch item %d (id %s): %v", e.Index, e.ID, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// ParallelEncode runs encode across inputs using a fixed pool of
// runtime.GOMAXPROCS(0) workers and returns outputs in input order. If any
// item fails, ParallelEncode returns the first-observed error by input
// index (not first-completed — completion order is not deterministic) and
// a nil output slice: per §4.6, progress is all-or-nothing.
func ParallelEncode(inputs [][]byte, encode Encoder) ([]string, error) {
	return parallelEncode(inputs, encode, numWorkers())
}

// parallelEncodeN is the same as ParallelEncode but lets tests fix the
// worker count for determinism.
func parallelEncodeN(inputs [][]byte, encode Encoder, workers int) ([]string, error) {
	return parallelEncode(inputs, encode, workers)
}

func parallelEncode(inputs [][]byte, encode Encoder, workers int) ([]string, error) {
	n := len(inputs)
	if n == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	outputs := make([]string, n)
	errs := make([]*ItemError, n)

	var next int64 = -1
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			w := newWorker()
			for {
				idx := int(atomic.AddInt64(&next, 1))
				if idx >= n {
					return
				}
				out, err := encode(w, inputs[idx])
				if err != nil {
					errs[idx] = &ItemError{Index: idx, ID: uuid.New(), Err: err}
					continue
				}
				outputs[idx] = out
			}
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			return nil, errs[i]
		}
	}
	return outputs, nil
}

// Package compute holds the fine-grained, within-one-simulation
// concurrency helpers: a chunked worker pool for the five inner passes
// (deposition, Poisson scaling, gradient, integration, expansion rescale)
// and a compute-mode selector that decides when a pass is worth
// parallelizing at all.
//
// The chunking pattern below (split n items into contiguous ranges, one
// goroutine per range, block on a WaitGroup barrier) is the same
// shape used elsewhere in the corpus for per-frame entity updates; here
// it drives per-cell and per-particle passes instead.
package compute

import (
	"runtime"
	"sync"
)

// ForEachChunk splits the index range [0, n) into contiguous chunks, one
// per worker, and runs fn on each chunk concurrently. It blocks until
// every chunk has completed. workers <= 0 selects runtime.GOMAXPROCS(0).
func ForEachChunk(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunkSize
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

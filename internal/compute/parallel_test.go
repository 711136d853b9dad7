package compute

import (
	"sort"
	"sync"
	"testing"
)

func TestForEachChunkCoversEveryIndex(t *testing.T) {
	n := 997 // deliberately not a multiple of any worker count
	var mu sync.Mutex
	seen := make([]int, 0, n)

	ForEachChunk(n, 8, func(lo, hi int) {
		mu.Lock()
		for i := lo; i < hi; i++ {
			seen = append(seen, i)
		}
		mu.Unlock()
	})

	if len(seen) != n {
		t.Fatalf("expected %d indices visited, got %d", n, len(seen))
	}
	sort.Ints(seen)
	for i, v := range seen {
		if v != i {
			t.Fatalf("expected index %d, got %d", i, v)
		}
	}
}

func TestForEachChunkZeroN(t *testing.T) {
	called := false
	ForEachChunk(0, 4, func(lo, hi int) { called = true })
	if called {
		t.Error("expected fn not to be called for n=0")
	}
}

func TestForEachChunkSingleWorker(t *testing.T) {
	var gotLo, gotHi int
	ForEachChunk(10, 1, func(lo, hi int) { gotLo, gotHi = lo, hi })
	if gotLo != 0 || gotHi != 10 {
		t.Errorf("expected single chunk [0,10), got [%d,%d)", gotLo, gotHi)
	}
}

func TestForEachChunkMoreWorkersThanItems(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int]bool)
	ForEachChunk(3, 16, func(lo, hi int) {
		mu.Lock()
		for i := lo; i < hi; i++ {
			seen[i] = true
		}
		mu.Unlock()
	})
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct indices visited, got %d", len(seen))
	}
}

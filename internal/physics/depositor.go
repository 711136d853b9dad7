package physics

import (
	"math"
	"sync/atomic"
	"unsafe"

	"cosmopm/internal/compute"
	"cosmopm/internal/mesh"
)

// Deposit assigns each particle's mass to the single grid cell it
// currently occupies (nearest-grid-point assignment) and writes the
// result into m.Density. The buffer is zeroed first, since it is reused
// every step. Only the real part is ever written; the imaginary part
// stays zero.
//
// Deposit is safe to call with particles partitioned across goroutines
// (see ParallelDeposit): multiple particles landing in the same cell
// accumulate via an atomic compare-and-swap loop on that cell's real
// component, so no caller-side locking is required.
func Deposit(g *Group, m *mesh.Mesh, w float64) {
	m.ZeroDensity()
	depositRange(g, m, w, 0, g.N())
}

// ParallelDeposit is the concurrent counterpart of Deposit: it zeroes the
// buffer once, then assigns disjoint contiguous ranges of particles to
// worker goroutines, each depositing through the same atomic-add path.
func ParallelDeposit(g *Group, m *mesh.Mesh, w float64, workers int) {
	m.ZeroDensity()
	compute.ForEachChunk(g.N(), workers, func(lo, hi int) {
		depositRange(g, m, w, lo, hi)
	})
}

func depositRange(g *Group, m *mesh.Mesh, w float64, lo, hi int) {
	nc := m.Nc
	cellVolume := (w / float64(nc))
	cellVolume = cellVolume * cellVolume * cellVolume
	increment := g.Mass / cellVolume

	for p := lo; p < hi; p++ {
		pos := g.Particles[p].Position
		i := int(math.Floor(pos.X * float64(nc)))
		j := int(math.Floor(pos.Y * float64(nc)))
		k := int(math.Floor(pos.Z * float64(nc)))
		idx := m.Idx(i, j, k)
		addAtomicReal(&m.Density[idx], increment)
	}
}

// addAtomicReal atomically adds delta to the real component of *c using a
// compare-and-swap loop over the bit pattern of that float64. complex128
// has the same memory layout as struct{re, im float64}, so the first 8
// bytes of *c are exactly its real part.
func addAtomicReal(c *complex128, delta float64) {
	addr := (*uint64)(unsafe.Pointer(c))
	for {
		old := atomic.LoadUint64(addr)
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(addr, old, next) {
			return
		}
	}
}

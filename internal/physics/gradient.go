package physics

import (
	"cosmopm/internal/compute"
	"cosmopm/internal/mesh"
)

// Field is the dense, materialized gradient of the potential: one Vec3
// per grid cell. Materializing the full field trades Nc^3 extra storage
// for letting the integrator do a single NGP lookup per particle instead
// of re-differencing the potential at every kick.
type Field struct {
	Nc     int
	Values []Vec3 // length Nc^3, indexed the same way as mesh.Mesh
}

// Gradient computes the central-difference gradient of the real part of
// m.Potential at every cell, with periodic wrap on each axis: the
// neighbour of cell 0 on any axis is cell Nc-1. Imaginary parts of the
// potential are ignored.
func Gradient(m *mesh.Mesh, w float64) *Field {
	f := &Field{Nc: m.Nc, Values: make([]Vec3, m.Len())}
	gradientRange(m, w, f, 0, m.Len())
	return f
}

// ParallelGradient is the concurrent counterpart of Gradient: each cell's
// central difference reads only its periodic neighbours in m.Potential
// and writes only its own slot in f.Values, so cells can be split across
// workers without locking.
func ParallelGradient(m *mesh.Mesh, w float64, workers int) *Field {
	f := &Field{Nc: m.Nc, Values: make([]Vec3, m.Len())}
	compute.ForEachChunk(m.Len(), workers, func(lo, hi int) {
		gradientRange(m, w, f, lo, hi)
	})
	return f
}

func gradientRange(m *mesh.Mesh, w float64, f *Field, lo, hi int) {
	nc := m.Nc
	h := w / float64(nc)
	denom := 2 * h

	for n := lo; n < hi; n++ {
		i, j, k := m.Coords(n)

		px := real(m.Potential[m.Idx(i+1, j, k)])
		mx := real(m.Potential[m.Idx(i-1, j, k)])
		py := real(m.Potential[m.Idx(i, j+1, k)])
		my := real(m.Potential[m.Idx(i, j-1, k)])
		pz := real(m.Potential[m.Idx(i, j, k+1)])
		mz := real(m.Potential[m.Idx(i, j, k-1)])

		f.Values[n] = Vec3{
			X: (px - mx) / denom,
			Y: (py - my) / denom,
			Z: (pz - mz) / denom,
		}
	}
}

// At returns the gradient at cell (i,j,k), wrapping coordinates
// periodically the same way mesh.Mesh.Idx does.
func (f *Field) At(nc int, i, j, k int) Vec3 {
	idx := idxWrap(i, j, k, nc)
	return f.Values[idx]
}

func idxWrap(i, j, k, nc int) int {
	wrap := func(x int) int {
		x %= nc
		if x < 0 {
			x += nc
		}
		return x
	}
	i, j, k = wrap(i), wrap(j), wrap(k)
	return k + nc*(j+nc*i)
}

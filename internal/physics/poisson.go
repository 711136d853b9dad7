package physics

import (
	"math"

	"cosmopm/internal/compute"
	"cosmopm/internal/mesh"
)

// SolvePoisson scales the Fourier-space density in m.KSpace by the
// Green's-function factor in place, after a forward transform has
// populated it and before a backward transform reads it back out.
//
// The DC bin (index 0) is zeroed, and every other bin n with decoded
// coordinates (i,j,k) is multiplied by
//
//	G(i,j,k) = -4*pi*W^2 / (i^2+j^2+k^2) * 1/(8*Nc^3)
//
// This deliberately uses the raw integer triple (i,j,k) as the
// wavenumber proxy rather than the folded form i' = i if i <= Nc/2 else
// i-Nc. That is the literal, possibly non-physical formula this solver
// reproduces rather than silently "fixing" — see the design notes on the
// aliasing question this raises for wavenumbers above Nc/2.
func SolvePoisson(m *mesh.Mesh, w float64) {
	m.KSpace[0] = 0
	n3 := m.Len()
	normalization := 1.0 / (8.0 * float64(n3))

	for n := 1; n < n3; n++ {
		i, j, k := m.Coords(n)
		denom := float64(i*i + j*j + k*k)
		g := -4.0 * math.Pi * w * w / denom * normalization
		m.KSpace[n] *= complex(g, 0)
	}
}

// ParallelSolvePoisson is the concurrent counterpart of SolvePoisson: the
// scaling at each non-zero bin is independent of every other bin, so the
// range [1, Nc^3) is split across worker goroutines.
func ParallelSolvePoisson(m *mesh.Mesh, w float64, workers int) {
	m.KSpace[0] = 0
	n3 := m.Len()
	normalization := 1.0 / (8.0 * float64(n3))

	compute.ForEachChunk(n3-1, workers, func(lo, hi int) {
		for n := lo + 1; n < hi+1; n++ {
			i, j, k := m.Coords(n)
			denom := float64(i*i + j*j + k*k)
			g := -4.0 * math.Pi * w * w / denom * normalization
			m.KSpace[n] *= complex(g, 0)
		}
	})
}

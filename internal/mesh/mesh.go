// Package mesh holds the cubic grid buffers shared by the gravity solver:
// mass density, its Fourier transform, and the scalar potential. Buffers
// are allocated once and reused every step, mirroring the owned-buffer
// discipline the original GPU buffer manager used for its pooled buffers.
package mesh

import (
	"fmt"
	"os"
)

// MaxRecommendedCells is the cell count per axis above which Mesh warns
// to standard error instead of failing outright.
const MaxRecommendedCells = 400

// Mesh is a cubic grid of side Nc holding three complex scalar fields in
// row-major order, with idx(i,j,k) = k + Nc*(j + Nc*i). All three buffers
// have identical length Nc^3 and are bound to the Mesh for its entire
// lifetime: an FFT plan built against these slices is invalidated if they
// are ever replaced rather than mutated in place.
type Mesh struct {
	Nc int

	Density   []complex128
	KSpace    []complex128
	Potential []complex128
}

// New allocates a Mesh of side nc. It returns an error for nc <= 0 and
// writes an advisory warning to stderr for nc above MaxRecommendedCells,
// since the O(Nc^3) memory and the separable 3-D FFT both become
// expensive well before any hard limit is reached.
func New(nc int) (*Mesh, error) {
	if nc <= 0 {
		return nil, fmt.Errorf("mesh: cell count must be positive, got %d", nc)
	}
	if nc > MaxRecommendedCells {
		fmt.Fprintf(os.Stderr, "warning: cell count %d exceeds recommended maximum %d\n", nc, MaxRecommendedCells)
	}

	n3 := nc * nc * nc
	return &Mesh{
		Nc:        nc,
		Density:   make([]complex128, n3),
		KSpace:    make([]complex128, n3),
		Potential: make([]complex128, n3),
	}, nil
}

// Idx maps 3-D cell coordinates to the flat buffer index, wrapping each
// axis modulo Nc so callers may pass negative or out-of-range coordinates
// for periodic neighbour lookups.
func (m *Mesh) Idx(i, j, k int) int {
	nc := m.Nc
	i = wrap(i, nc)
	j = wrap(j, nc)
	k = wrap(k, nc)
	return k + nc*(j+nc*i)
}

// Coords decodes a flat index n in [0, Nc^3) back into (i,j,k) using the
// same convention as Idx: k varies fastest.
func (m *Mesh) Coords(n int) (i, j, k int) {
	nc := m.Nc
	k = n % nc
	n /= nc
	j = n % nc
	i = n / nc
	return i, j, k
}

// Len returns Nc^3, the length of every field buffer.
func (m *Mesh) Len() int {
	return m.Nc * m.Nc * m.Nc
}

func wrap(i, nc int) int {
	i %= nc
	if i < 0 {
		i += nc
	}
	return i
}

// ZeroDensity clears the density buffer in place; the depositor calls this
// before every deposition pass since the buffer is reused across steps.
func (m *Mesh) ZeroDensity() {
	for i := range m.Density {
		m.Density[i] = 0
	}
}

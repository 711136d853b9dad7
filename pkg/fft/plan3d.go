package fft

import (
	"fmt"
	"math/cmplx"

	godsp "github.com/mjibson/go-dsp/fft"

	"cosmopm/internal/mesh"
)

// Plan3D is a forward/backward 3-D complex-to-complex DFT bound to a
// specific Mesh's buffers at construction time. The three-dimensional
// transform is separable, so it is computed as a 1-D pass applied
// successively along each of the three axes: the processor's FFT1D for
// Forward, and rawInverse1D (built on the same go-dsp forward transform)
// for Backward.
//
// The plan is pinned to the Mesh it was built from: Forward always reads
// Mesh.Density and writes Mesh.KSpace, and Backward always reads
// Mesh.KSpace and writes Mesh.Potential. Replacing the Mesh's buffer
// slices after construction (rather than mutating them in place)
// invalidates the plan.
type Plan3D struct {
	m         *mesh.Mesh
	processor FFTProcessor
}

// NewPlan3D builds a plan bound to m. It fails if m is nil, since every
// subsequent Forward/Backward call dereferences the bound mesh's buffers.
func NewPlan3D(m *mesh.Mesh) (*Plan3D, error) {
	if m == nil {
		return nil, fmt.Errorf("fft: cannot build a plan over a nil mesh")
	}
	return &Plan3D{m: m, processor: NewFFTProcessor()}, nil
}

// Forward transforms Mesh.Density into Mesh.KSpace in place.
func (p *Plan3D) Forward() {
	transform3D(p.m.Nc, p.m.Density, p.m.KSpace, p.processor.FFT1D)
}

// Backward transforms Mesh.KSpace into Mesh.Potential in place. It uses
// the raw, unnormalized inverse transform rather than go-dsp's IFFT1D
// (which divides by N itself): the Poisson solver's Green's-function
// factor already folds in the 1/(8*Nc^3) round-trip normalization, per
// the documented formula, so normalizing twice here would silently
// change that literal result.
func (p *Plan3D) Backward() {
	transform3D(p.m.Nc, p.m.KSpace, p.m.Potential, rawInverse1D)
}

// rawInverse1D computes the unnormalized inverse DFT of x using the
// identity IDFT_raw(x) = conj(DFT(conj(x))), so it is built from the same
// go-dsp forward transform FFT1D wraps rather than from IFFT1D.
func rawInverse1D(x []complex128) []complex128 {
	conjIn := make([]complex128, len(x))
	for i, v := range x {
		conjIn[i] = cmplx.Conj(v)
	}
	out := godsp.FFT(conjIn)
	for i, v := range out {
		out[i] = cmplx.Conj(v)
	}
	return out
}

// transform3D applies a 1-D transform along each axis of an Nc^3 flat
// buffer in row-major order (k fastest, matching Mesh.Idx), writing the
// result into dst. src and dst may be the same underlying buffer only
// through the scratch copy performed here; both must have length Nc^3.
func transform3D(nc int, src, dst []complex128, fft1d func([]complex128) []complex128) {
	n3 := nc * nc * nc
	buf := make([]complex128, n3)
	copy(buf, src)

	line := make([]complex128, nc)

	// Axis k (fastest-varying, contiguous): transform each row directly.
	for i := 0; i < nc; i++ {
		for j := 0; j < nc; j++ {
			base := nc * (j + nc*i)
			copy(line, buf[base:base+nc])
			out := fft1d(line)
			copy(buf[base:base+nc], out)
		}
	}

	// Axis j: stride nc, nc elements, offset by k and i.
	for i := 0; i < nc; i++ {
		for k := 0; k < nc; k++ {
			for j := 0; j < nc; j++ {
				line[j] = buf[k+nc*(j+nc*i)]
			}
			out := fft1d(line)
			for j := 0; j < nc; j++ {
				buf[k+nc*(j+nc*i)] = out[j]
			}
		}
	}

	// Axis i: stride nc^2, nc elements, offset by k and j.
	for j := 0; j < nc; j++ {
		for k := 0; k < nc; k++ {
			for i := 0; i < nc; i++ {
				line[i] = buf[k+nc*(j+nc*i)]
			}
			out := fft1d(line)
			for i := 0; i < nc; i++ {
				buf[k+nc*(j+nc*i)] = out[i]
			}
		}
	}

	copy(dst, buf)
}

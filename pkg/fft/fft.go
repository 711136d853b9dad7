package fft

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFTProcessor defines the interface for one-dimensional FFT operations.
// Plan3D composes three passes of FFT1D to build the separable 3-D
// transform; IFFT1D is kept alongside it as the matching normalized
// inverse, even though Plan3D's own Backward uses a raw (unnormalized)
// inverse built directly on top of the go-dsp forward transform instead.
type FFTProcessor interface {
	FFT1D(input []complex128) []complex128
	IFFT1D(input []complex128) []complex128
}

// CPUFFTProcessor implements FFT operations using CPU
type CPUFFTProcessor struct{}

// NewFFTProcessor creates a new FFT processor
func NewFFTProcessor() FFTProcessor {
	return &CPUFFTProcessor{}
}

// FFT1D performs one-dimensional FFT
func (p *CPUFFTProcessor) FFT1D(input []complex128) []complex128 {
	return fft.FFT(input)
}

// IFFT1D performs one-dimensional inverse FFT
func (p *CPUFFTProcessor) IFFT1D(input []complex128) []complex128 {
	return fft.IFFT(input)
}

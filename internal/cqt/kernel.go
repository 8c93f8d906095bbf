// SPDX-License-Identifier: MIT
package cqt

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"

	"showcqt/internal/config"
	"showcqt/pkg/bitint"
)

// SparseCoeff is one surviving term of a column's sparse spectral kernel:
// a bin index into the shared FFT output and its real-valued weight.
type SparseCoeff struct {
	Index int
	Coeff float64
}

// Kernel is the sparse set of (index, coefficient) pairs contracted
// against the shared FFT spectrum to evaluate one output column.
type Kernel []SparseCoeff

// planFFTSize returns the shared FFT length for a CQT render at the given
// sample rate and time-smearing clamp: the smallest power of two at least
// rate*timeClamp samples long.
func planFFTSize(rate int, timeClamp float64) int {
	maxLen := float64(rate) * timeClamp
	return bitint.NextPowerOfTwo(int(math.Ceil(maxLen)))
}

// designKernels builds one sparse kernel per output column, following the
// Brown-Puckette constant-Q kernel construction: a Nuttall-windowed
// complex exponential at the column's center frequency, forward-FFT'd and
// pruned to the coefficients carrying the bulk of its magnitude.
//
// fftLen must be planFFTSize(rate, cfg.TimeClamp).
func designKernels(rate int, cfg *config.Config, fftLen int) []Kernel {
	const (
		a0 = 0.355768
		a1 = 0.487396 / a0
		a2 = 0.144232 / a0
		a3 = 0.012604 / a0
	)

	maxLen := float64(rate) * cfg.TimeClamp
	hlen := fftLen / 2
	fft := fourier.NewCmplxFFT(fftLen)

	data := make([]complex128, fftLen)
	kernels := make([]Kernel, VideoWidth)

	for k := 0; k < VideoWidth; k++ {
		for i := range data {
			data[i] = 0
		}

		freq := ColumnFreq(k)
		tlen := float64(rate) * (24.0 * 16.0) / freq
		tlen = tlen * maxLen / (tlen + maxLen)

		data[hlen] = complex((1.0+a1+a2+a3)*(1.0/tlen)*cfg.Volume*(1.0/float64(fftLen)), 0)

		sv := math.Sin(2.0 * math.Pi * freq / float64(rate))
		cv := math.Cos(2.0 * math.Pi * freq / float64(rate))
		svStep, cvStep := sv, cv

		sw := math.Sin(2.0 * math.Pi / tlen)
		cw := math.Cos(2.0 * math.Pi / tlen)
		swStep, cwStep := sw, cw

		for x := 1; float64(x) < 0.5*tlen; x++ {
			cw2 := cw*cw - sw*sw
			sw2 := cw*sw + sw*cw
			cw3 := cw*cw2 - sw*sw2
			w := (1.0 + a1*cw + a2*cw2 + a3*cw3) * (1.0 / tlen) * cfg.Volume * (1.0 / float64(fftLen))

			re := w * cv
			im := w * sv
			data[hlen+x] = complex(re, im)
			data[hlen-x] = complex(re, -im)

			cvTmp := cv*cvStep - sv*svStep
			sv = sv*cvStep + cv*svStep
			cv = cvTmp

			cwTmp := cw*cwStep - sw*swStep
			sw = sw*cwStep + cw*swStep
			cw = cwTmp
		}

		out := fft.Coefficients(nil, data)

		sorted := make([]SparseCoeff, fftLen)
		for x, c := range out {
			sorted[x] = SparseCoeff{Index: x, Coeff: real(c)}
		}
		sort.Slice(sorted, func(i, j int) bool {
			return math.Abs(sorted[i].Coeff) < math.Abs(sorted[j].Coeff)
		})

		var total float64
		for _, c := range sorted {
			total += math.Abs(c.Coeff)
		}

		threshold := total * cfg.CoeffClamp * coeffClampScale
		var partial float64
		cut := 0
		for x, c := range sorted {
			partial += math.Abs(c.Coeff)
			if partial > threshold {
				cut = x
				break
			}
		}

		kernel := make(Kernel, len(sorted)-cut)
		copy(kernel, sorted[cut:])
		kernels[k] = kernel
	}

	return kernels
}

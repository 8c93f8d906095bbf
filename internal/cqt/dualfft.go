// SPDX-License-Identifier: MIT
package cqt

import "gonum.org/v1/gonum/dsp/fourier"

// dualFFT performs one forward FFT over packed stereo samples (left in
// the real part, right in the imaginary part) and algebraically
// separates the two channels' independent spectra from the single
// transform, exploiting the Hermitian symmetry of a real signal's DFT.
//
// packed is consumed in place as scratch; left and right are freshly
// allocated spectra of the same length.
type dualFFT struct {
	fft *fourier.CmplxFFT
	n   int
}

func newDualFFT(n int) *dualFFT {
	return &dualFFT{fft: fourier.NewCmplxFFT(n), n: n}
}

// unpack runs the forward transform on packed and returns the separated
// left and right channel spectra.
func (d *dualFFT) unpack(packed []complex128) (left, right []complex128) {
	n := d.n
	left = d.fft.Coefficients(nil, packed)
	right = make([]complex128, n)

	right[0] = complex(2*imag(left[0]), 0)
	left[0] = complex(2*real(left[0]), 0)

	for x := 1; x <= n/2; x++ {
		a := left[x]
		b := left[n-x]

		tmpy := imag(a) - imag(b)

		rRe := imag(a) + imag(b)
		rIm := real(a) - real(b)
		right[x] = complex(rRe, rIm)
		right[n-x] = complex(rRe, -rIm)

		lRe := real(a) + real(b)
		left[x] = complex(lRe, tmpy)
		left[n-x] = complex(lRe, -tmpy)
	}

	return left, right
}

// SPDX-License-Identifier: MIT
package cqt

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/dsp/fourier"
)

func TestDualFFT_SeparatesIndependentChannels(t *testing.T) {
	t.Parallel()
	const n = 64

	left := make([]float64, n)
	right := make([]float64, n)
	for i := range left {
		left[i] = math.Sin(2 * math.Pi * 3 * float64(i) / n)
		right[i] = math.Cos(2 * math.Pi * 5 * float64(i) / n)
	}

	packed := make([]complex128, n)
	for i := range packed {
		packed[i] = complex(left[i], right[i])
	}

	d := newDualFFT(n)
	lSpec, rSpec := d.unpack(packed)

	// unpack keeps the factor of two from summing F[x] with its mirrored
	// bin (and doubles DC to match), so each channel's spectrum is twice
	// its plain DFT.
	realFFT := fourier.NewFFT(n)
	wantL := realFFT.Coefficients(nil, left)
	wantR := realFFT.Coefficients(nil, right)
	for i := range wantL {
		wantL[i] *= 2
		wantR[i] *= 2
	}

	for i := 0; i <= n/2; i++ {
		if diff := cmplxAbs(lSpec[i] - wantL[i]); diff > 1e-9 {
			t.Errorf("left[%d] = %v, want %v (diff %v)", i, lSpec[i], wantL[i], diff)
		}
		if diff := cmplxAbs(rSpec[i] - wantR[i]); diff > 1e-9 {
			t.Errorf("right[%d] = %v, want %v (diff %v)", i, rSpec[i], wantR[i], diff)
		}
	}
}

func TestDualFFT_HermitianSymmetryOfRealInput(t *testing.T) {
	t.Parallel()
	const n = 32

	packed := make([]complex128, n)
	for i := range packed {
		packed[i] = complex(math.Sin(2*math.Pi*float64(i)/n), 0)
	}

	d := newDualFFT(n)
	lSpec, rSpec := d.unpack(packed)

	for i := 0; i < n; i++ {
		if cmplxAbs(rSpec[i]) > 1e-9 {
			t.Errorf("right[%d] = %v, want ~0 for a zero right channel", i, rSpec[i])
		}
	}
	_ = lSpec
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

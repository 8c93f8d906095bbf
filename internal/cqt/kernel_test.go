// SPDX-License-Identifier: MIT
package cqt

import (
	"math"
	"testing"

	"showcqt/internal/config"
)

func TestPlanFFTSize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rate      int
		timeClamp float64
		want      int
	}{
		{44100, 0.17, 8192},
		{48000, 0.17, 8192},
		{44100, 1.0, 65536},
	}

	for _, tt := range tests {
		got := planFFTSize(tt.rate, tt.timeClamp)
		if got != tt.want {
			t.Errorf("planFFTSize(%d, %v) = %d, want %d", tt.rate, tt.timeClamp, got, tt.want)
		}
		if got&(got-1) != 0 {
			t.Errorf("planFFTSize(%d, %v) = %d is not a power of two", tt.rate, tt.timeClamp, got)
		}
	}
}

func TestDesignKernels_OneColumnPerWidth(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfig()
	fftLen := planFFTSize(44100, cfg.TimeClamp)

	kernels := designKernels(44100, cfg, fftLen)
	if len(kernels) != VideoWidth {
		t.Fatalf("len(kernels) = %d, want %d", len(kernels), VideoWidth)
	}
}

func TestDesignKernels_IndicesInBounds(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfig()
	fftLen := planFFTSize(44100, cfg.TimeClamp)

	kernels := designKernels(44100, cfg, fftLen)
	for k, kernel := range kernels {
		if len(kernel) == 0 {
			t.Fatalf("column %d has an empty kernel", k)
		}
		for _, c := range kernel {
			if c.Index < 0 || c.Index >= fftLen {
				t.Fatalf("column %d: coefficient index %d out of bounds [0, %d)", k, c.Index, fftLen)
			}
		}
	}
}

func TestDesignKernels_SortedAscendingByMagnitude(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfig()
	fftLen := planFFTSize(44100, cfg.TimeClamp)

	kernels := designKernels(44100, cfg, fftLen)
	kernel := kernels[960] // a mid-range column

	for i := 1; i < len(kernel); i++ {
		if math.Abs(kernel[i-1].Coeff) > math.Abs(kernel[i].Coeff) {
			t.Fatalf("kernel not sorted ascending by magnitude at index %d", i)
		}
	}
}

func TestDesignKernels_TighterClampShrinksKernel(t *testing.T) {
	t.Parallel()
	loose := config.NewConfig()
	loose.CoeffClamp = config.MinCoeffClamp

	tight := config.NewConfig()
	tight.CoeffClamp = config.MaxCoeffClamp

	fftLen := planFFTSize(44100, loose.TimeClamp)
	looseKernels := designKernels(44100, loose, fftLen)
	tightKernels := designKernels(44100, tight, fftLen)

	if len(tightKernels[960]) >= len(looseKernels[960]) {
		t.Errorf("tighter coeff_clamp should discard more coefficients: loose=%d tight=%d",
			len(looseKernels[960]), len(tightKernels[960]))
	}
}

func TestColumnFreq_Monotonic(t *testing.T) {
	t.Parallel()
	prev := ColumnFreq(0)
	for k := 1; k < VideoWidth; k += 97 {
		f := ColumnFreq(k)
		if f <= prev {
			t.Fatalf("ColumnFreq not increasing at k=%d: %v <= %v", k, f, prev)
		}
		prev = f
	}
}

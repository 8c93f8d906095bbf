// SPDX-License-Identifier: MIT
package cqt

import (
	"showcqt/internal/config"
	"showcqt/internal/video"
)

// Engine is the complete showcqt pipeline for one stream: kernel design,
// the sliding-window scheduler, the dual-real FFT unpack, per-column bin
// evaluation, and frame assembly.
type Engine struct {
	cfg    *config.Config
	rate   int
	fftLen int

	kernels []Kernel
	dfft    *dualFFT
	sched   *scheduler
	fa      *frameAssembler
}

// NewEngine builds an Engine for a fixed sample rate and configuration.
// Kernel design runs once here; it is the only expensive setup step, as
// it was in the original filter's config_output.
func NewEngine(rate int, cfg *config.Config) (*Engine, error) {
	if !config.IsSupportedSampleRate(rate) {
		return nil, formatErrorf("unsupported sample rate %d", rate)
	}
	if err := cfg.Validate(); err != nil {
		return nil, configErrorf("%v", err)
	}

	fftLen := planFFTSize(rate, cfg.TimeClamp)
	if fftLen > maxFFTLen {
		return nil, resourceErrorf("shared FFT length %d exceeds the %d-sample ceiling", fftLen, maxFFTLen)
	}

	sched, err := newScheduler(fftLen, rate, cfg.FPS, cfg.Count)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:     cfg,
		rate:    rate,
		fftLen:  fftLen,
		kernels: designKernels(rate, cfg, fftLen),
		dfft:    newDualFFT(fftLen),
		sched:   sched,
		fa:      newFrameAssembler(cfg.Count, NewDefaultFont()),
	}, nil
}

// FFTLen returns the shared FFT length this engine was configured with.
func (e *Engine) FFTLen() int {
	return e.fftLen
}

// Feed pushes a buffer of stereo samples through the scheduler, returning
// zero or more finished frames (a buffer usually produces zero or one,
// but may produce more if it spans several scheduler steps).
func (e *Engine) Feed(left, right []float32) []*video.Frame {
	var frames []*video.Frame
	e.sched.feed(left, right, func(buf []complex128) {
		if f := e.plot(buf); f != nil {
			frames = append(frames, f)
		}
	})
	return frames
}

// Drain flushes the scheduler at end of stream, zero-padding the
// remaining partial window exactly as the original filter's EOF handling
// does, returning any final frames.
func (e *Engine) Drain() []*video.Frame {
	var frames []*video.Frame
	e.sched.drain(func(buf []complex128) {
		if f := e.plot(buf); f != nil {
			frames = append(frames, f)
		}
	})
	return frames
}

// plot runs one scheduler window through the dual-FFT unpack, the
// per-column evaluator, and the frame assembler.
func (e *Engine) plot(buf []complex128) *video.Frame {
	left, right := e.dfft.unpack(buf)
	columns := evaluateColumns(e.kernels, left, right, e.cfg.Gamma)
	return e.fa.push(columns)
}

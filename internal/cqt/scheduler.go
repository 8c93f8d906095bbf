// SPDX-License-Identifier: MIT
package cqt

// scheduler implements the sliding-window sample scheduler: it packs
// incoming stereo samples (left into the real part, right into the
// imaginary part) into a shared FFT-length buffer, and invokes a sink
// callback with that buffer every time a fixed step advance completes
// a new window.
//
// It mirrors the showcqt filter's filter_frame/request_frame pair: Feed
// corresponds to filter_frame with real samples, Drain to filter_frame
// called with a nil frame at end of stream.
type scheduler struct {
	fftLen        int
	step          int
	remainingFill int // samples still needed to fill the tail of buf
	buf           []complex128
}

// newScheduler builds a scheduler for the given shared FFT length and
// rate/fps/count combination. rate must be evenly divisible by
// fps*count; the showcqt option table's divisibility invariant.
func newScheduler(fftLen, rate, fps, count int) (*scheduler, error) {
	if rate%(fps*count) != 0 {
		return nil, configErrorf("rate (%d) is not divisible by fps*count (%d*%d)", rate, fps, count)
	}
	return &scheduler{
		fftLen:        fftLen,
		step:          rate / (fps * count),
		remainingFill: fftLen / 2,
		buf:           make([]complex128, fftLen),
	}, nil
}

// feed packs left/right into the scheduler's buffer, invoking emit once
// per completed window. It consumes the entire buffer before returning,
// buffering any leftover samples internally for the next call.
func (s *scheduler) feed(left, right []float32, emit func(buf []complex128)) {
	n := len(left)
	i := 0
	for i < n {
		remaining := n - i
		if remaining >= s.remainingFill {
			j := s.fftLen - s.remainingFill
			for m := 0; m < s.remainingFill; m++ {
				s.buf[j+m] = complex(float64(left[i+m]), float64(right[i+m]))
			}
			emit(s.buf)

			i += s.remainingFill
			s.shift()
			s.remainingFill = s.step
		} else {
			j := s.fftLen - s.remainingFill
			for m := 0; m < remaining; m++ {
				s.buf[j+m] = complex(float64(left[i+m]), float64(right[i+m]))
			}
			s.remainingFill -= remaining
			i = n
		}
	}
}

// drain flushes any samples still buffered at end of stream, zero-padding
// and advancing exactly as live samples would, until the tail no longer
// holds a partial window (remainingFill reaches half the FFT length).
func (s *scheduler) drain(emit func(buf []complex128)) {
	for s.remainingFill < s.fftLen/2 {
		j := s.fftLen - s.remainingFill
		for m := j; m < s.fftLen; m++ {
			s.buf[m] = 0
		}
		emit(s.buf)

		s.shift()
		s.remainingFill += s.step
	}
}

// shift slides the buffer left by step samples, discarding the oldest
// step entries and leaving the newest step slots to be refilled.
func (s *scheduler) shift() {
	copy(s.buf[:s.fftLen-s.step], s.buf[s.step:])
}

// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"showcqt/internal/config"
	"showcqt/internal/cqt"
)

// WAVSource reads stereo PCM samples from a WAV file, one fixed-size
// buffer at a time, normalizing integer samples to float32 in [-1, 1].
type WAVSource struct {
	file    *os.File
	decoder *wav.Decoder
	buf     *audio.IntBuffer
	scale   float32

	framesPerBuffer int
	left, right     []float32
	done            bool
}

// NewWAVSource opens path as a WAV file and prepares it for buffered
// stereo reads. framesPerBuffer sets the frame count NextBuffer returns
// on each call (spec.md's host-side input chunking is independent of the
// scheduler's internal ring buffer size).
func NewWAVSource(path string, framesPerBuffer int) (*WAVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		file.Close()
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}
	if decoder.NumChans != 2 {
		file.Close()
		return nil, fmt.Errorf("%s: expected 2 channels, got %d", path, decoder.NumChans)
	}
	if !config.IsSupportedSampleRate(int(decoder.SampleRate)) {
		file.Close()
		return nil, &cqt.Error{Kind: cqt.ErrKindFormat,
			Msg: fmt.Sprintf("%s: unsupported sample rate %d", path, decoder.SampleRate)}
	}

	scale := float32(int(1) << (decoder.BitDepth - 1))

	return &WAVSource{
		file:    file,
		decoder: decoder,
		buf: &audio.IntBuffer{
			Format: &audio.Format{NumChannels: 2, SampleRate: int(decoder.SampleRate)},
			Data:   make([]int, framesPerBuffer*2),
		},
		scale:           scale,
		framesPerBuffer: framesPerBuffer,
		left:            make([]float32, framesPerBuffer),
		right:           make([]float32, framesPerBuffer),
	}, nil
}

// SampleRate implements Source.
func (s *WAVSource) SampleRate() int {
	return int(s.decoder.SampleRate)
}

// NextBuffer implements Source, returning io.EOF once the file has been
// fully read.
func (s *WAVSource) NextBuffer() (left, right []float32, err error) {
	if s.done {
		return nil, nil, io.EOF
	}

	s.buf.Data = s.buf.Data[:s.framesPerBuffer*2]
	if err := s.decoder.PCMBuffer(s.buf); err != nil {
		return nil, nil, fmt.Errorf("failed to read WAV samples: %w", err)
	}

	frames := len(s.buf.Data) / 2
	if frames < s.framesPerBuffer {
		s.done = true
	}
	if frames == 0 {
		return nil, nil, io.EOF
	}

	for i := 0; i < frames; i++ {
		s.left[i] = float32(s.buf.Data[i*2]) / s.scale
		s.right[i] = float32(s.buf.Data[i*2+1]) / s.scale
	}

	return s.left[:frames], s.right[:frames], nil
}

// Close implements Source.
func (s *WAVSource) Close() error {
	return s.file.Close()
}

// SPDX-License-Identifier: MIT
package video

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"showcqt/internal/log"
)

// rgbImage adapts a Frame's RGB24 pixel buffer to image.Image without
// copying it into an image.RGBA.
type rgbImage struct {
	f *Frame
}

func (r rgbImage) ColorModel() color.Model { return color.RGBAModel }

func (r rgbImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.f.Width, r.f.Height)
}

func (r rgbImage) At(x, y int) color.Color {
	i := r.f.RowOffset(y) + x*3
	return color.RGBA{R: r.f.Pix[i], G: r.f.Pix[i+1], B: r.f.Pix[i+2], A: 0xff}
}

// PNGSequenceSink writes each frame as a numbered PNG file into dir
// (frame-000000.png, frame-000001.png, ...).
type PNGSequenceSink struct {
	dir     string
	written int
}

// NewPNGSequenceSink creates dir (and any missing parents) and returns a
// sink that writes one PNG per Emit call.
func NewPNGSequenceSink(dir string) (*PNGSequenceSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("video: create output dir: %w", err)
	}
	return &PNGSequenceSink{dir: dir}, nil
}

// Emit writes frame as frame-%06d.png using its sequence position in the
// stream, not its PTS, so frames always land on a dense, gap-free name
// sequence whatever PTS values the frames carry.
func (s *PNGSequenceSink) Emit(frame *Frame) error {
	name := filepath.Join(s.dir, fmt.Sprintf("frame-%06d.png", s.written))
	out, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("video: create %s: %w", name, err)
	}
	defer out.Close()

	if err := png.Encode(out, rgbImage{f: frame}); err != nil {
		return fmt.Errorf("video: encode %s: %w", name, err)
	}
	s.written++
	log.Debugf("video: wrote %s (pts=%d)", name, frame.PTS)
	return nil
}

// Close is a no-op; each frame's file is closed as it is written.
func (s *PNGSequenceSink) Close() error { return nil }

var _ Sink = (*PNGSequenceSink)(nil)

// SPDX-License-Identifier: MIT
package cqt

import (
	"showcqt/internal/video"
)

// frameAssembler owns the scrolling spectrogram ring buffer and turns a
// column evaluation into a finished video frame: the gamma-shaded bar,
// the note legend, and the scrolling spectrogram beneath it.
//
// Every call to push writes one row into the ring (the spectrogram
// scrolls on every scheduler step), but only every count-th call actually
// assembles and returns a frame, matching the showcqt filter's decoupling
// of spectrogram time-resolution from the output frame rate.
type frameAssembler struct {
	font       FontProvider
	fontColor  [VideoWidth]uint8
	count      int
	spectIndex int // next row to write, decrementing
	spectCount int // 0..count-1, cycles once per push
	frameCount int64

	// spectrogram holds SpecH rows of VideoWidth*3 bytes, contiguous in
	// a single backing array (as the original filter's flat 2D array
	// is), so a run of consecutive rows can be copied with one slice
	// copy instead of one per row.
	spectrogram []uint8
}

func newFrameAssembler(count int, font FontProvider) *frameAssembler {
	fa := &frameAssembler{
		font:        font,
		count:       count,
		spectrogram: make([]uint8, SpecH*VideoWidth*3),
	}
	fa.buildFontColor()
	return fa
}

// row returns the i-th spectrogram row as a slice view into the shared
// backing array (no allocation, no copy).
func (fa *frameAssembler) row(i int) []uint8 {
	off := i * VideoWidth * 3
	return fa.spectrogram[off : off+VideoWidth*3]
}

// buildFontColor precomputes the legend's color-ramp ("blue/red" tint
// that highlights the octave nearest the legend's horizontal center).
func (fa *frameAssembler) buildFontColor() {
	const lo = (12*3 + 8) * 16
	const hi = (12*4 + 8) * 16
	for x := 0; x < VideoWidth; x++ {
		if x >= lo && x < hi {
			fx := float64(x-lo) * (1.0 / 192.0)
			sv := sinPi(fx)
			fa.fontColor[x] = uint8(sv*sv*255.0 + 0.5)
		} else {
			fa.fontColor[x] = 0
		}
	}
}

// push writes one evaluated column row into the spectrogram ring and, on
// every count-th call, assembles and returns a full video.Frame. It
// returns nil on calls that only advance the spectrogram.
func (fa *frameAssembler) push(columns []Column) *video.Frame {
	row := fa.row(fa.spectIndex)
	for x, c := range columns {
		row[x*3] = clampByte(c.R)
		row[x*3+1] = clampByte(c.G)
		row[x*3+2] = clampByte(c.B)
	}

	var frame *video.Frame
	if fa.spectCount == 0 {
		frame = fa.draw(columns)
		frame.PTS = fa.frameCount
		fa.frameCount++
	}

	fa.spectCount = (fa.spectCount + 1) % fa.count
	fa.spectIndex = (fa.spectIndex + SpecH - 1) % SpecH
	return frame
}

func (fa *frameAssembler) draw(columns []Column) *video.Frame {
	frame := video.NewFrame(VideoWidth, VideoHeight)

	fa.drawBar(frame, columns)
	fa.drawLegend(frame)
	fa.drawSpectrogram(frame)

	return frame
}

// drawBar renders the instantaneous power bar in the top half: each
// column's color is shaded toward black below its power-proportional
// height within the bar region.
func (fa *frameAssembler) drawBar(frame *video.Frame, columns []Column) {
	for y := 0; y < SpecH; y++ {
		height := float64(SpecH-y) * (1.0 / SpecH)
		for x, c := range columns {
			if c.Power <= height {
				frame.SetPixel(x, y, 0, 0, 0)
				continue
			}
			mul := (c.Power - height) / (c.Power + 0.0001)
			frame.SetPixel(x, y,
				clampByte(mul*c.R),
				clampByte(mul*c.G),
				clampByte(mul*c.B),
			)
		}
	}
}

// drawLegend fills the font band with a copy of the current spectrogram
// row as background, then stamps the note-letter glyphs over it, tinted
// by the precomputed font-color ramp, doubled 2x in both dimensions.
func (fa *frameAssembler) drawLegend(frame *video.Frame) {
	bg := fa.row(fa.spectIndex)
	for y := 0; y < FontHeight; y++ {
		copy(frame.Pix[frame.RowOffset(SpecH+y):frame.RowOffset(SpecH+y)+VideoWidth*3], bg)
	}

	step := VideoWidth / 10
	for tick := 0; tick < VideoWidth; tick += step {
		for u := 0; u < len(legendString); u++ {
			ch := legendString[u]
			glyph := fa.font.Glyph(ch)
			ux0 := tick + 16*u
			if ux0+2 > VideoWidth-1 {
				break
			}
			for v := 0; v < 16; v++ {
				bits := glyph[v]
				ux := ux0
				for mask := uint8(0x80); mask != 0; mask >>= 1 {
					if bits&mask != 0 {
						fa.plotGlyphDot(frame, ux, SpecH+2*v)
					}
					ux += 2
				}
			}
		}
	}
}

// plotGlyphDot paints one font pixel as a 2x2 block, tinted by the
// font-color ramp at its two source columns.
func (fa *frameAssembler) plotGlyphDot(frame *video.Frame, ux, y int) {
	if ux+1 >= VideoWidth || y+1 >= VideoHeight {
		return
	}
	c0 := fa.fontColor[ux]
	var c1 uint8
	if ux+1 < VideoWidth {
		c1 = fa.fontColor[ux+1]
	}

	frame.SetPixel(ux, y, 255-c0, 0, c0)
	frame.SetPixel(ux, y+1, 255-c0, 0, c0)
	frame.SetPixel(ux+1, y, 255-c1, 0, c1)
	frame.SetPixel(ux+1, y+1, 255-c1, 0, c1)
}

// drawSpectrogram copies the scrolling history ring into the bottom
// region of the frame, newest row (spectIndex) at the top and older rows
// below it. When the frame's rows are
// contiguous (always true for a freshly allocated video.Frame) this is
// one or two contiguous memcpy-style copies instead of SpecH separate
// per-row copies.
func (fa *frameAssembler) drawSpectrogram(frame *video.Frame) {
	if frame.Stride() == VideoWidth*3 {
		fa.drawSpectrogramContiguous(frame)
		return
	}
	for y := 0; y < SpecH; y++ {
		row := fa.row((fa.spectIndex + y) % SpecH)
		off := frame.RowOffset(SpecStart + y)
		copy(frame.Pix[off:off+VideoWidth*3], row)
	}
}

// drawSpectrogramContiguous copies the ring in at most two slice copies:
// the tail chunk from spectIndex to the end of the backing array, then
// (if the ring has wrapped) the head chunk from the start.
func (fa *frameAssembler) drawSpectrogramContiguous(frame *video.Frame) {
	start := frame.RowOffset(SpecStart)
	dst := frame.Pix[start:]

	tailOff := fa.spectIndex * VideoWidth * 3
	tail := fa.spectrogram[tailOff:]
	n := copy(dst, tail)
	if fa.spectIndex > 0 {
		copy(dst[n:], fa.spectrogram[:tailOff])
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

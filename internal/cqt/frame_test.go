// SPDX-License-Identifier: MIT
package cqt

import (
	"testing"

	"showcqt/internal/video"
)

func makeTestColumns(power float64) []Column {
	cols := make([]Column, VideoWidth)
	for i := range cols {
		cols[i] = Column{R: 100, G: 120, B: 140, Power: power}
	}
	return cols
}

func TestFrameAssembler_EmitsEveryCountCalls(t *testing.T) {
	t.Parallel()
	fa := newFrameAssembler(4, NewDefaultFont())

	var emitted int
	for i := 0; i < 12; i++ {
		if f := fa.push(makeTestColumns(0.5)); f != nil {
			emitted++
		}
	}

	if emitted != 3 {
		t.Fatalf("emitted = %d, want 3 (12 pushes / count=4)", emitted)
	}
}

func TestFrameAssembler_FrameDimensions(t *testing.T) {
	t.Parallel()
	fa := newFrameAssembler(1, NewDefaultFont())

	f := fa.push(makeTestColumns(0.5))
	if f == nil {
		t.Fatal("expected a frame on the first push with count=1")
	}
	if f.Width != VideoWidth || f.Height != VideoHeight {
		t.Fatalf("frame dims = %dx%d, want %dx%d", f.Width, f.Height, VideoWidth, VideoHeight)
	}
}

func TestFrameAssembler_PTSIncrements(t *testing.T) {
	t.Parallel()
	fa := newFrameAssembler(1, NewDefaultFont())

	f1 := fa.push(makeTestColumns(0.5))
	f2 := fa.push(makeTestColumns(0.5))

	if f1.PTS != 0 || f2.PTS != 1 {
		t.Errorf("PTS sequence = %d, %d, want 0, 1", f1.PTS, f2.PTS)
	}
}

func TestFrameAssembler_ZeroPowerBarIsFullyBlack(t *testing.T) {
	t.Parallel()
	fa := newFrameAssembler(1, NewDefaultFont())

	f := fa.push(makeTestColumns(0))
	// Row 0 of the bar region (the top, hardest to light) must stay black
	// when every column has zero power.
	off := f.RowOffset(0)
	for x := 0; x < VideoWidth; x++ {
		i := off + x*3
		if f.Pix[i] != 0 || f.Pix[i+1] != 0 || f.Pix[i+2] != 0 {
			t.Fatalf("column %d not black with zero power: %v %v %v", x, f.Pix[i], f.Pix[i+1], f.Pix[i+2])
		}
	}
}

func TestFrameAssembler_ContiguousAndStridedPathsAgree(t *testing.T) {
	t.Parallel()
	fa1 := newFrameAssembler(1, NewDefaultFont())
	fa2 := newFrameAssembler(1, NewDefaultFont())

	// Advance both assemblers identically so the ring wraps at least
	// once, then compare the two drawing paths directly.
	var last1 *[]uint8
	for i := 0; i < SpecH+5; i++ {
		cols := makeTestColumns(float64(i%7) / 10)
		f := fa1.push(cols)
		if f != nil {
			last1 = &f.Pix
		}
		fa2.push(cols)
	}
	_ = last1

	wideFrame := video.NewFrameWithStride(VideoWidth, VideoHeight, VideoWidth*3)
	narrowFrame := video.NewFrameWithStride(VideoWidth, VideoHeight, VideoWidth*3+16)

	fa1.drawSpectrogramContiguous(wideFrame)
	fa1.drawSpectrogram(narrowFrame)

	for y := 0; y < SpecH; y++ {
		wOff := wideFrame.RowOffset(SpecStart + y)
		nOff := narrowFrame.RowOffset(SpecStart + y)
		for x := 0; x < VideoWidth*3; x++ {
			if wideFrame.Pix[wOff+x] != narrowFrame.Pix[nOff+x] {
				t.Fatalf("row %d byte %d differs between contiguous and strided paths", y, x)
			}
		}
	}
}

// SPDX-License-Identifier: MIT
package cqt

import (
	"testing"

	"showcqt/internal/config"
	"showcqt/pkg/utils"
)

func TestNewEngine_RejectsUnsupportedSampleRate(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfig()
	if _, err := NewEngine(22050, cfg); err == nil {
		t.Error("expected error for unsupported sample rate")
	}
}

func TestNewEngine_RejectsBadDivisibility(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfig()
	cfg.FPS = 29 // 44100 % (29*6) != 0
	if _, err := NewEngine(44100, cfg); err == nil {
		t.Error("expected error for rate not divisible by fps*count")
	}
}

func TestEngine_FeedProducesFrames(t *testing.T) {
	cfg := config.NewConfig()
	cfg.FPS = 25
	cfg.Count = 6 // step = 44100/(25*6) = 294

	engine, err := NewEngine(44100, cfg)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}

	left, right := utils.GenerateStereoSine(engine.FFTLen()*3, 44100, 440, 220)

	const chunk = 512
	total := 0
	for i := 0; i < len(left); i += chunk {
		end := i + chunk
		if end > len(left) {
			end = len(left)
		}
		frames := engine.Feed(left[i:end], right[i:end])
		total += len(frames)
	}
	frames := engine.Drain()
	total += len(frames)

	if total == 0 {
		t.Fatal("expected at least one emitted frame")
	}
}

func TestEngine_FrameColumnsVaryWithSignal(t *testing.T) {
	cfg := config.NewConfig()
	cfg.FPS = 25
	cfg.Count = 1 // emit every scheduler step

	engine, err := NewEngine(44100, cfg)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}

	left, right := utils.GenerateStereoSine(engine.FFTLen()*2, 44100, 440, 440)

	found := false
	const chunk = 256
	for i := 0; i+chunk <= len(left); i += chunk {
		frames := engine.Feed(left[i:i+chunk], right[i:i+chunk])
		for _, f := range frames {
			for x := 0; x < VideoWidth; x++ {
				off := f.RowOffset(0) + x*3
				if f.Pix[off] != 0 || f.Pix[off+1] != 0 || f.Pix[off+2] != 0 {
					found = true
				}
			}
		}
	}

	if !found {
		t.Error("expected at least one non-black pixel in the bar region for a loud sine input")
	}
}

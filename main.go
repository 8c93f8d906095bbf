// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"showcqt/cmd"
	"showcqt/internal/audio"
	"showcqt/internal/config"
	"showcqt/internal/cqt"
	"showcqt/internal/log"
	"showcqt/internal/tui"
	"showcqt/internal/video"
	"showcqt/pkg/build"
)

// main is the entry point for the showcqt renderer. The program flow is
// divided into three phases:
//
// 1. Startup Phase (Cold Path):
//   - Initialize build information
//   - Configure runtime settings
//   - Initialize PortAudio
//   - Parse command line arguments
//   - Execute one-off commands (devices, version) if requested
//
// 2. Concurrent Phase (Hot Path):
//   - Open the audio source (WAV file or live capture device)
//   - Build the CQT engine and video sinks
//   - Pump audio buffers through the engine into the sinks
//
// 3. Shutdown Phase (Cold Path):
//   - Handle termination signals
//   - Drain the engine's remaining frames
//   - Close sources and sinks
func main() {
	// ==================== STARTUP PHASE (Cold Path) ====================

	if err := build.Initialize(); err != nil {
		log.Fatal(err)
	}

	// One thread for the audio capture/render loop, one for everything else.
	runtime.GOMAXPROCS(2)

	if err := audio.Initialize(); err != nil {
		log.Fatal(err)
	}
	defer audio.Terminate()

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal(err)
	}
	if err := cmd.ParseArgs(cfg); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if level, ok := log.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(level)
	}

	switch cfg.Command {
	case "devices":
		if err := audio.ListDevices(); err != nil {
			log.Fatal(err)
		}
		return
	case "version":
		return
	}

	// ==================== CONCURRENT PHASE (Hot Path) ====================

	source, err := openSource(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer source.Close()

	engine, err := cqt.NewEngine(source.SampleRate(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	sinks, err := openSinks(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSinks(sinks)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	var stats chan tui.Stats
	renderErr := make(chan error, 1)

	if cfg.TUI {
		stats = make(chan tui.Stats, 8)
		go func() {
			renderErr <- renderLoop(source, engine, sinks, done, stats)
		}()
		if err := tui.Run(stats); err != nil {
			log.Errorf("dashboard error: %v", err)
		}
		if err := <-renderErr; err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := renderLoop(source, engine, sinks, done, nil); err != nil {
		log.Fatal(err)
	}
}

// openSource selects a WAV file or a live capture device according to
// cfg.InputPath.
func openSource(cfg *config.Config) (audio.Source, error) {
	if cfg.InputPath != "" {
		return audio.NewWAVSource(cfg.InputPath, cfg.FramesPerBuffer)
	}
	return audio.NewMicSource(cfg.InputDevice, cfg.FramesPerBuffer, false)
}

// openSinks builds every video sink requested in cfg: the PNG sequence
// sink when cfg.OutputDir is set, the WebSocket sink when cfg.ListenAddr
// is set. With both empty it returns no sinks.
func openSinks(cfg *config.Config) ([]video.Sink, error) {
	var sinks []video.Sink

	if cfg.OutputDir != "" {
		png, err := video.NewPNGSequenceSink(cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, png)
	}
	if cfg.ListenAddr != "" {
		sinks = append(sinks, video.NewWebSocketSink(cfg.ListenAddr))
	}
	return sinks, nil
}

func closeSinks(sinks []video.Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			log.Errorf("error closing sink: %v", err)
		}
	}
}

// renderLoop pumps audio buffers from source through engine into every
// sink until source is exhausted (io.EOF, the WAV case) or done fires
// (a termination signal, the live-capture case). A termination signal
// closes source, which unblocks a live capture's NextBuffer with
// ErrClosed. It always drains the engine's remaining primed samples
// before returning.
func renderLoop(source audio.Source, engine *cqt.Engine, sinks []video.Sink, done <-chan os.Signal, stats chan<- tui.Stats) error {
	var framesEmitted int64

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-done:
			source.Close()
		case <-stop:
		}
	}()

	emit := func(frames []*video.Frame) error {
		for _, f := range frames {
			for _, s := range sinks {
				if err := s.Emit(f); err != nil {
					return err
				}
			}
			framesEmitted++
		}
		if stats != nil && len(frames) > 0 {
			select {
			case stats <- tui.Stats{FramesEmitted: framesEmitted, Status: "running"}:
			default:
			}
		}
		return nil
	}

	for {
		left, right, err := source.NextBuffer()
		if err != nil {
			break
		}
		if err := emit(engine.Feed(left, right)); err != nil {
			return err
		}
	}

	if err := emit(engine.Drain()); err != nil {
		return err
	}
	if stats != nil {
		stats <- tui.Stats{FramesEmitted: framesEmitted, Status: "done"}
		close(stats)
	}
	fmt.Fprintf(os.Stderr, "showcqt: rendered %d frames\n", framesEmitted)
	return nil
}

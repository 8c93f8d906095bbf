// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"
)

// MicSource captures stereo audio from a live PortAudio input device.
//
// The PortAudio callback runs on a dedicated OS thread and must not
// allocate: it de-interleaves into one of two pre-allocated buffers and
// hands the buffer index to the consumer over a channel, matching the
// teacher engine's pre-allocate-and-signal pattern but pull-based instead
// of push-based.
type MicSource struct {
	stream     *portaudio.Stream
	sampleRate int

	framesPerBuffer int
	latency         time.Duration
	bufs            [2]stereoBuf
	nextWrite       int32 // atomic index into bufs for the callback to fill next
	ready           chan int32
	closed          int32
}

type stereoBuf struct {
	left, right []float32
}

// NewMicSource opens deviceID (config.MinDeviceID selects the system
// default) for stereo capture at the device's default sample rate.
func NewMicSource(deviceID, framesPerBuffer int, lowLatency bool) (*MicSource, error) {
	device, err := InputDevice(deviceID)
	if err != nil {
		return nil, err
	}
	if device.MaxInputChannels < 2 {
		return nil, fmt.Errorf("device %q does not support stereo input", device.Name)
	}

	latency := device.DefaultHighInputLatency
	if lowLatency {
		latency = device.DefaultLowInputLatency
	}

	m := &MicSource{
		sampleRate:      int(device.DefaultSampleRate),
		framesPerBuffer: framesPerBuffer,
		latency:         latency,
		ready:           make(chan int32, 2),
	}
	for i := range m.bufs {
		m.bufs[i] = stereoBuf{
			left:  make([]float32, framesPerBuffer),
			right: make([]float32, framesPerBuffer),
		}
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: 2,
			Device:   device,
			Latency:  latency,
		},
		FramesPerBuffer: framesPerBuffer,
		SampleRate:      device.DefaultSampleRate,
	}

	stream, err := portaudio.OpenStream(params, m.callback)
	if err != nil {
		return nil, fmt.Errorf("failed to open input stream: %w", err)
	}
	m.stream = stream

	if err := m.stream.Start(); err != nil {
		m.stream.Close()
		return nil, fmt.Errorf("failed to start input stream: %w", err)
	}

	return m, nil
}

// callback is the PortAudio hot path: no allocations, pre-allocated
// buffers only, dedicated OS thread.
func (m *MicSource) callback(in []float32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Consumer fell behind: both buffers are queued, so drop this capture
	// rather than overwrite a buffer that has not been read yet.
	if len(m.ready) == cap(m.ready) {
		return
	}

	idx := atomic.LoadInt32(&m.nextWrite)
	buf := &m.bufs[idx]

	n := len(in) / 2
	for i := 0; i < n; i++ {
		buf.left[i] = in[i*2]
		buf.right[i] = in[i*2+1]
	}

	select {
	case m.ready <- idx:
		atomic.StoreInt32(&m.nextWrite, (idx+1)%2)
	default:
		// Never block the audio thread; the same buffer is reused by the
		// next callback.
	}
}

// SampleRate implements Source.
func (m *MicSource) SampleRate() int {
	return m.sampleRate
}

// NextBuffer implements Source, blocking until the next capture buffer is
// ready or the source is closed.
func (m *MicSource) NextBuffer() (left, right []float32, err error) {
	idx, ok := <-m.ready
	if !ok {
		return nil, nil, ErrClosed
	}
	buf := &m.bufs[idx]
	return buf.left[:m.framesPerBuffer], buf.right[:m.framesPerBuffer], nil
}

// Close implements Source, stopping capture and releasing the stream.
func (m *MicSource) Close() error {
	if !atomic.CompareAndSwapInt32(&m.closed, 0, 1) {
		return nil
	}
	close(m.ready)

	if m.stream == nil {
		return nil
	}
	if err := m.stream.Stop(); err != nil {
		return err
	}
	return m.stream.Close()
}

// StreamLatency reports the negotiated input latency, for diagnostics.
func (m *MicSource) StreamLatency() time.Duration {
	return m.latency
}

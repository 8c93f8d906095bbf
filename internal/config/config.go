// SPDX-License-Identifier: MIT
package config

// Core configuration constants that define the boundaries and defaults
// for the CQT spectrum engine and its surrounding host.
const (
	MinDeviceID = -1 // -1 represents the system default input device

	// CQT tuning defaults, per the showcqt option table (spec.md §6).
	DefaultVolume     = 16.0
	DefaultTimeClamp  = 0.17
	DefaultCoeffClamp = 1.0
	DefaultGamma      = 3.0
	DefaultFPS        = 25
	DefaultCount      = 6

	MinVolume, MaxVolume         = 0.1, 100.0
	MinTimeClamp, MaxTimeClamp   = 0.1, 1.0
	MinCoeffClamp, MaxCoeffClamp = 0.1, 10.0
	MinGamma, MaxGamma           = 1.0, 7.0
	MinFPS, MaxFPS               = 10, 100
	MinCount, MaxCount           = 1, 30

	// Host defaults.
	DefaultInputDevice     = MinDeviceID
	DefaultFramesPerBuffer = 512
	DefaultOutputDir       = "./frames"
	DefaultLogLevel        = "info"

	// Accepted stream sample rates (spec.md §1 Non-goals: only two).
	SampleRate44100 = 44100
	SampleRate48000 = 48000
)

// Config holds all runtime configuration for a showcqt render: the six CQT
// tuning knobs from spec.md's option table, plus the host-side source/sink
// selection that spec.md treats as an external collaborator.
type Config struct {
	// CQT tuning options (spec.md §6).
	Volume     float64 `yaml:"volume"`
	TimeClamp  float64 `yaml:"time_clamp"`
	CoeffClamp float64 `yaml:"coeff_clamp"`
	Gamma      float64 `yaml:"gamma"`
	FPS        int     `yaml:"fps"`
	Count      int     `yaml:"count"`

	// Audio source selection.
	InputPath       string `yaml:"input_path"`  // WAV file path; empty selects live capture.
	InputDevice     int    `yaml:"input_device"` // PortAudio device ID when InputPath is empty.
	FramesPerBuffer int    `yaml:"frames_per_buffer"`

	// Video sink selection.
	OutputDir  string `yaml:"output_dir"`  // PNG sequence destination; empty disables.
	ListenAddr string `yaml:"listen_addr"` // WebSocket listen address; empty disables.

	// Debug / observability.
	LogLevel string `yaml:"log_level"`
	Command  string `yaml:"command,omitempty"`
	TUI      bool   `yaml:"tui"`
}

// NewConfig returns a Config populated with the showcqt defaults.
func NewConfig() *Config {
	return &Config{
		Volume:          DefaultVolume,
		TimeClamp:       DefaultTimeClamp,
		CoeffClamp:      DefaultCoeffClamp,
		Gamma:           DefaultGamma,
		FPS:             DefaultFPS,
		Count:           DefaultCount,
		InputDevice:     DefaultInputDevice,
		FramesPerBuffer: DefaultFramesPerBuffer,
		OutputDir:       DefaultOutputDir,
		LogLevel:        DefaultLogLevel,
	}
}

// IsSupportedSampleRate reports whether rate is one of the two rates showcqt
// accepts (spec.md §1 Non-goals: arbitrary sample rates are out of scope).
func IsSupportedSampleRate(rate int) bool {
	return rate == SampleRate44100 || rate == SampleRate48000
}

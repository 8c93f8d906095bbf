// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file specified by path. If path is
// empty, it searches default locations ("showcqt.yaml", then "config.yaml"). If no file is found,
// it falls back to NewConfig's built-in defaults. After loading defaults or
// from file, it applies environment variable overrides and validates the
// final configuration against spec.md §3's option ranges.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		candidates := []string{"showcqt.yaml", "config.yaml"}
		found := false
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				found = true
				break
			}
		}
		if !found {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate enforces the option ranges from spec.md's Configuration table.
// The rate/(fps*count) divisibility invariant depends on the negotiated
// stream sample rate and is checked separately by cqt.NewEngine once the
// rate is known.
func (c *Config) Validate() error {
	switch {
	case c.Volume < MinVolume || c.Volume > MaxVolume:
		return fmt.Errorf("volume %v out of range [%v, %v]", c.Volume, MinVolume, MaxVolume)
	case c.TimeClamp < MinTimeClamp || c.TimeClamp > MaxTimeClamp:
		return fmt.Errorf("time_clamp %v out of range [%v, %v]", c.TimeClamp, MinTimeClamp, MaxTimeClamp)
	case c.CoeffClamp < MinCoeffClamp || c.CoeffClamp > MaxCoeffClamp:
		return fmt.Errorf("coeff_clamp %v out of range [%v, %v]", c.CoeffClamp, MinCoeffClamp, MaxCoeffClamp)
	case c.Gamma < MinGamma || c.Gamma > MaxGamma:
		return fmt.Errorf("gamma %v out of range [%v, %v]", c.Gamma, MinGamma, MaxGamma)
	case c.FPS < MinFPS || c.FPS > MaxFPS:
		return fmt.Errorf("fps %d out of range [%d, %d]", c.FPS, MinFPS, MaxFPS)
	case c.Count < MinCount || c.Count > MaxCount:
		return fmt.Errorf("count %d out of range [%d, %d]", c.Count, MinCount, MaxCount)
	}
	return nil
}

// applyEnvOverrides applies SHOWCQT_* environment variable overrides on top
// of whatever LoadConfig has assembled so far (defaults, then file).
func (cfg *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("SHOWCQT_VOLUME"); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Volume = f
		}
	}
	if val, ok := os.LookupEnv("SHOWCQT_TIME_CLAMP"); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.TimeClamp = f
		}
	}
	if val, ok := os.LookupEnv("SHOWCQT_COEFF_CLAMP"); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.CoeffClamp = f
		}
	}
	if val, ok := os.LookupEnv("SHOWCQT_GAMMA"); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Gamma = f
		}
	}
	if val, ok := os.LookupEnv("SHOWCQT_FPS"); ok {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.FPS = i
		}
	}
	if val, ok := os.LookupEnv("SHOWCQT_COUNT"); ok {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Count = i
		}
	}
	if val, ok := os.LookupEnv("SHOWCQT_INPUT"); ok {
		cfg.InputPath = val
	}
	if val, ok := os.LookupEnv("SHOWCQT_OUTPUT_DIR"); ok {
		cfg.OutputDir = val
	}
	if val, ok := os.LookupEnv("SHOWCQT_LISTEN"); ok {
		cfg.ListenAddr = val
	}
	if val, ok := os.LookupEnv("SHOWCQT_LOG_LEVEL"); ok {
		cfg.LogLevel = val
	}
}

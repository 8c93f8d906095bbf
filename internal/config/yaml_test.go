// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "showcqt.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig("")
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config, got nil")
	}
	if cfg.FPS != DefaultFPS || cfg.Count != DefaultCount {
		t.Errorf("expected defaults, got fps=%d count=%d", cfg.FPS, cfg.Count)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig("nonexistent.yaml")
	if err == nil {
		t.Errorf("expected error for missing file, got nil")
	}
	if cfg != nil {
		t.Errorf("expected nil config on error, got %+v", cfg)
	}
}

func TestLoadConfig_UnmarshalError(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, ":\n:bad")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, "fps: 30\ncount: 4\nvolume: 20\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FPS != 30 || cfg.Count != 4 || cfg.Volume != 20 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Fields omitted from the file fall back to NewConfig's defaults.
	if cfg.Gamma != DefaultGamma {
		t.Errorf("expected default gamma %v, got %v", DefaultGamma, cfg.Gamma)
	}
}

func TestLoadConfig_InvalidRange(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, "fps: 5\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "fps") {
		t.Errorf("expected fps range error, got %v", err)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SHOWCQT_FPS", "50")
	t.Setenv("SHOWCQT_GAMMA", "2.5")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FPS != 50 {
		t.Errorf("expected fps overridden to 50, got %d", cfg.FPS)
	}
	if cfg.Gamma != 2.5 {
		t.Errorf("expected gamma overridden to 2.5, got %v", cfg.Gamma)
	}
}

func TestValidate_TableDriven(t *testing.T) {
	t.Parallel()
	base := NewConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(*Config) {}, false},
		{"volume too low", func(c *Config) { c.Volume = 0.01 }, true},
		{"volume too high", func(c *Config) { c.Volume = 1000 }, true},
		{"time_clamp too low", func(c *Config) { c.TimeClamp = 0.01 }, true},
		{"coeff_clamp too high", func(c *Config) { c.CoeffClamp = 20 }, true},
		{"gamma too low", func(c *Config) { c.Gamma = 0.5 }, true},
		{"fps too low", func(c *Config) { c.FPS = 1 }, true},
		{"count too high", func(c *Config) { c.Count = 31 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected nil error, got %v", err)
			}
		})
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Step.A != 2.707 {
		t.Errorf("expected a 2.707, got %v", cfg.Step.A)
	}
	if cfg.Step.X0 != 0.1 {
		t.Errorf("expected x0 0.1, got %v", cfg.Step.X0)
	}
	if cfg.Step.Tolerance != 1e-4 {
		t.Errorf("expected step tolerance 1e-4, got %v", cfg.Step.Tolerance)
	}
	if cfg.Scan.Tolerance != 1e-6 {
		t.Errorf("expected scan tolerance 1e-6, got %v", cfg.Scan.Tolerance)
	}
	if cfg.Scan.Points != 1000 || cfg.Scan.AMin != 2.6 || cfg.Scan.AMax != 4 {
		t.Errorf("unexpected scan range: %+v", cfg.Scan)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultConfig_NamesAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pick.Names[0] = "XX"
	if DefaultNames[0] == "XX" {
		t.Error("DefaultConfig shares the package name list")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"step tolerance", func(c *Config) { c.Step.Tolerance = 0 }},
		{"step cap", func(c *Config) { c.Step.MaxIterations = -1 }},
		{"curve points", func(c *Config) { c.Step.CurvePoints = 1 }},
		{"scan tolerance", func(c *Config) { c.Scan.Tolerance = -1e-6 }},
		{"scan cap", func(c *Config) { c.Scan.MaxIterations = 0 }},
		{"scan points", func(c *Config) { c.Scan.Points = 0 }},
		{"scan range", func(c *Config) { c.Scan.AMin = 4; c.Scan.AMax = 2.6 }},
		{"output size", func(c *Config) { c.Output.Width = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate_SinglePoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.Points = 1
	cfg.Scan.AMax = cfg.Scan.AMin
	if err := cfg.Validate(); err != nil {
		t.Errorf("single-point scan should validate: %v", err)
	}
	if got := cfg.Params(); len(got) != 1 || got[0] != cfg.Scan.AMin {
		t.Errorf("unexpected params: %v", got)
	}
}

func TestValidate_OutOfDomainAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Step.A = 4.5
	cfg.Step.X0 = 1.5
	if err := cfg.Validate(); err != nil {
		t.Errorf("domain is not a config constraint: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logistic.yaml")

	cfg := DefaultConfig()
	cfg.Step.A = 3.2
	cfg.Scan.Points = 10
	cfg.Output.Save = false
	cfg.Pick.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := DefaultConfig()
	if err := LoadInto(path, loaded); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Step.A != 3.2 || loaded.Scan.Points != 10 || loaded.Output.Save || loaded.Pick.Seed != 7 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadInto_PartialOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("step:\n  a: 3.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Step.A != 3.5 {
		t.Errorf("expected a 3.5, got %v", cfg.Step.A)
	}
	if cfg.Scan.Points != DefaultPoints {
		t.Errorf("expected default scan points, got %d", cfg.Scan.Points)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLoadInto_KeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("step:\n  x0: 0.3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset(ModeStep, "chaos")
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Step.A != 3.9 || cfg.Step.X0 != 0.3 {
		t.Errorf("expected preset a with file x0, got %+v", cfg.Step)
	}
}

func TestLoadInto_Errors(t *testing.T) {
	if err := LoadInto(filepath.Join(t.TempDir(), "missing.yaml"), DefaultConfig()); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("step: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadInto(path, DefaultConfig()); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset(ModeStep, "period-4")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Step.A != 3.5 {
		t.Errorf("expected a 3.5, got %v", cfg.Step.A)
	}
	if cfg.Scan.Points != DefaultPoints {
		t.Error("step preset should leave scan section untouched")
	}

	cfg = GetPreset(ModeScan, "window")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scan.AMin != 3.82 {
		t.Errorf("expected a_min 3.82, got %v", cfg.Scan.AMin)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset(ModeStep, "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "chaos"); cfg != nil {
		t.Error("expected nil for nonexistent mode")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets(ModeStep)
	if len(presets) != len(StepPresets) {
		t.Errorf("expected %d step presets, got %d", len(StepPresets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent mode")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, mode := range []string{ModeStep, ModeScan} {
		for _, name := range ListPresets(mode) {
			if err := GetPreset(mode, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", mode, name, err)
			}
		}
	}
}

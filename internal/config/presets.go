package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/logistic/internal/logistic"
)

const (
	ModeStep = "step"
	ModeScan = "scan"
)

var StepPresets = map[string]StepConfig{
	"fixed-point": {
		A: 2.707, X0: 0.1, Tolerance: logistic.DefaultStepTolerance,
		MaxIterations: DefaultMaxIterations, CurvePoints: DefaultCurvePoints,
	},
	"slow": {
		A: 2.95, X0: 0.1, Tolerance: logistic.DefaultStepTolerance,
		MaxIterations: DefaultMaxIterations, CurvePoints: DefaultCurvePoints,
	},
	"period-2": {
		A: 3.2, X0: 0.1, Tolerance: logistic.DefaultStepTolerance,
		MaxIterations: 200, CurvePoints: DefaultCurvePoints,
	},
	"period-4": {
		A: 3.5, X0: 0.1, Tolerance: logistic.DefaultStepTolerance,
		MaxIterations: 200, CurvePoints: DefaultCurvePoints,
	},
	"chaos": {
		A: 3.9, X0: 0.1, Tolerance: logistic.DefaultStepTolerance,
		MaxIterations: 300, CurvePoints: DefaultCurvePoints,
	},
}

var ScanPresets = map[string]ScanConfig{
	"full": {
		AMin: DefaultAMin, AMax: DefaultAMax, Points: DefaultPoints, X0: DefaultScanX0,
		Tolerance: logistic.DefaultScanTolerance, MaxIterations: DefaultMaxIterations,
	},
	"doubling": {
		AMin: 2.9, AMax: 3.6, Points: 1000, X0: DefaultScanX0,
		Tolerance: logistic.DefaultScanTolerance, MaxIterations: DefaultMaxIterations,
	},
	"window": {
		AMin: 3.82, AMax: 3.86, Points: 800, X0: DefaultScanX0,
		Tolerance: logistic.DefaultScanTolerance, MaxIterations: DefaultMaxIterations,
	},
	"coarse": {
		AMin: DefaultAMin, AMax: DefaultAMax, Points: 200, X0: DefaultScanX0,
		Tolerance: 1e-5, MaxIterations: 2000,
	},
}

// GetPreset returns the default configuration with the named preset
// applied to the given mode's section, or nil if either is unknown.
func GetPreset(mode, name string) *Config {
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset(mode, name); err != nil {
		return nil
	}
	return cfg
}

// ApplyPreset replaces the mode's section with the named preset.
func (c *Config) ApplyPreset(mode, name string) error {
	switch mode {
	case ModeStep:
		p, ok := StepPresets[name]
		if !ok {
			return fmt.Errorf("unknown %s preset: %s (available: %v)", mode, name, ListPresets(mode))
		}
		c.Step = p
	case ModeScan:
		p, ok := ScanPresets[name]
		if !ok {
			return fmt.Errorf("unknown %s preset: %s (available: %v)", mode, name, ListPresets(mode))
		}
		c.Scan = p
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
	return nil
}

func ListPresets(mode string) []string {
	var names []string
	switch mode {
	case ModeStep:
		for name := range StepPresets {
			names = append(names, name)
		}
	case ModeScan:
		for name := range ScanPresets {
			names = append(names, name)
		}
	default:
		return nil
	}
	sort.Strings(names)
	return names
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/logistic/internal/logistic"
)

const (
	DefaultA             = 2.707
	DefaultX0            = 0.1
	DefaultScanX0        = 0.6
	DefaultAMin          = 2.6
	DefaultAMax          = 4.0
	DefaultPoints        = 1000
	DefaultMaxIterations = 10000
	DefaultOutputDir     = "image"
	DefaultLogLevel      = "info"
	DefaultCurvePoints   = 50
)

var DefaultNames = []string{"ML", "WJ", "FL", "CS", "ZF", "YH", "FY", "YW"}

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Step     StepConfig   `yaml:"step"`
	Scan     ScanConfig   `yaml:"scan"`
	Output   OutputConfig `yaml:"output"`
	Pick     PickConfig   `yaml:"pick"`
	LogLevel string       `yaml:"log_level"`
}

type StepConfig struct {
	A             float64 `yaml:"a"`
	X0            float64 `yaml:"x0"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	CurvePoints   int     `yaml:"curve_points"`
}

type ScanConfig struct {
	AMin          float64 `yaml:"a_min"`
	AMax          float64 `yaml:"a_max"`
	Points        int     `yaml:"points"`
	X0            float64 `yaml:"x0"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Save   bool   `yaml:"save"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PickConfig struct {
	Names []string `yaml:"names"`
	Seed  int64    `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Step: StepConfig{
			A:             DefaultA,
			X0:            DefaultX0,
			Tolerance:     logistic.DefaultStepTolerance,
			MaxIterations: DefaultMaxIterations,
			CurvePoints:   DefaultCurvePoints,
		},
		Scan: ScanConfig{
			AMin:          DefaultAMin,
			AMax:          DefaultAMax,
			Points:        DefaultPoints,
			X0:            DefaultScanX0,
			Tolerance:     logistic.DefaultScanTolerance,
			MaxIterations: DefaultMaxIterations,
		},
		Output: OutputConfig{
			Dir:    DefaultOutputDir,
			Save:   true,
			Width:  800,
			Height: 600,
		},
		Pick: PickConfig{
			Names: append([]string(nil), DefaultNames...),
		},
		LogLevel: DefaultLogLevel,
	}
}

// LoadInto overlays the file at path onto cfg; keys absent from the file
// keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration surface. It does not check that a and
// x0 lie in the map's domain; out-of-domain runs are allowed and only
// warned about by the caller.
func (c *Config) Validate() error {
	var errs []error
	if c.Step.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("step.tolerance must be positive, got %g", c.Step.Tolerance))
	}
	if c.Step.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("step.max_iterations must be positive, got %d", c.Step.MaxIterations))
	}
	if c.Step.CurvePoints < 2 {
		errs = append(errs, fmt.Errorf("step.curve_points must be at least 2, got %d", c.Step.CurvePoints))
	}
	if c.Scan.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("scan.tolerance must be positive, got %g", c.Scan.Tolerance))
	}
	if c.Scan.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("scan.max_iterations must be positive, got %d", c.Scan.MaxIterations))
	}
	if c.Scan.Points < 1 {
		errs = append(errs, fmt.Errorf("scan.points must be at least 1, got %d", c.Scan.Points))
	}
	if c.Scan.Points > 1 && c.Scan.AMin >= c.Scan.AMax {
		errs = append(errs, fmt.Errorf("scan.a_min (%g) must be below scan.a_max (%g)", c.Scan.AMin, c.Scan.AMax))
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		errs = append(errs, fmt.Errorf("output size must be positive, got %dx%d", c.Output.Width, c.Output.Height))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// StepOptions returns the iteration bounds for the single-seed run.
func (c *Config) StepOptions() logistic.Options {
	return logistic.Options{Tolerance: c.Step.Tolerance, MaxIterations: c.Step.MaxIterations}
}

// ScanOptions returns the iteration bounds for each scanned parameter.
func (c *Config) ScanOptions() logistic.Options {
	return logistic.Options{Tolerance: c.Scan.Tolerance, MaxIterations: c.Scan.MaxIterations}
}

// Params returns the scanned parameter values.
func (c *Config) Params() []float64 {
	return logistic.Linspace(c.Scan.AMin, c.Scan.AMax, c.Scan.Points)
}

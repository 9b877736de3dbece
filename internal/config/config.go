package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Input types accepted by the pipeline.
const (
	InputAuto = "auto"
	InputNEC2 = "nec2"
	InputOut  = "out"
)

// NoSweepProfile leaves FR cards untouched.
const NoSweepProfile = "no"

// ValidInputTypes lists the accepted input_type values.
var ValidInputTypes = []string{InputNEC2, InputOut, InputAuto}

// Config holds every run-time setting of the pipeline.
type Config struct {
	// Path to the nec2c executable
	SolverPath string `yaml:"solver_path"`
	// Empty means the solver runs without a deadline
	SolverTimeout string `yaml:"solver_timeout"`

	InputType    string `yaml:"input_type"`
	SweepProfile string `yaml:"sweep_profile"`

	// Outputs
	GnuplotFile string `yaml:"gnuplot_file"`
	PreviewPNG  string `yaml:"preview_png"`
	ReportPDF   string `yaml:"report_pdf"`
	Force       bool   `yaml:"force"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the defaults of the original command line tool.
func DefaultConfig() *Config {
	return &Config{
		SolverPath:   "/usr/bin/nec2c",
		InputType:    InputAuto,
		SweepProfile: NoSweepProfile,
		GnuplotFile:  "apg2.gpi",
		Logging:      LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty
// path selects the defaults; a named file must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, &ConfigurationError{Field: "config file", Value: path, Reason: "does not exist", Err: err}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigurationError{Reason: "failed to parse " + path, Err: err}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("NEC2C"); path != "" {
		c.SolverPath = path
	}
}

// GetSolverTimeout returns the solver deadline, zero when none is set.
func (c *Config) GetSolverTimeout() time.Duration {
	d, err := time.ParseDuration(c.SolverTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks the values that do not depend on the filesystem.
func (c *Config) Validate() error {
	valid := false
	for _, t := range ValidInputTypes {
		if c.InputType == t {
			valid = true
			break
		}
	}
	if !valid {
		return Errorf("input type", c.InputType, "must be one of %v", ValidInputTypes)
	}

	if c.SolverTimeout != "" {
		d, err := time.ParseDuration(c.SolverTimeout)
		if err != nil {
			return &ConfigurationError{Field: "solver timeout", Value: c.SolverTimeout, Reason: "not a duration", Err: err}
		}
		if d < 0 {
			return Errorf("solver timeout", c.SolverTimeout, "must not be negative")
		}
	}

	if c.GnuplotFile == "" {
		return Errorf("gnuplot file", c.GnuplotFile, "must not be empty")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return Errorf("logging level", c.Logging.Level, "must be debug, info, warn or error")
	}
	return nil
}

// NeedsSolver reports whether the input type can route files through nec2c.
func (c *Config) NeedsSolver() bool {
	return c.InputType == InputAuto || c.InputType == InputNEC2
}

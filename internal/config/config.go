// Package config handles grftool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/grf-graphics/internal/logger"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

const maxPrecision = 9

// ErrInvalidConfig is returned by Validate and Load for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all tool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Model   ModelConfig   `yaml:"model"`
}

// DataConfig holds game data file paths.
type DataConfig struct {
	GRFPaths []string `yaml:"grf_paths"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// OutputConfig controls how computed values are printed.
type OutputConfig struct {
	Precision int    `yaml:"precision"` // decimal places in text output
	Format    string `yaml:"format"`    // text or yaml
}

// ModelConfig controls bounding box and node matrix evaluation.
type ModelConfig struct {
	GroundAlign bool    `yaml:"ground_align"` // rest the box on Y=0 (BaseCenter)
	ReverseY    bool    `yaml:"reverse_y"`    // flip into map space
	AnimTimeMs  float32 `yaml:"anim_time_ms"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			GRFPaths: []string{"data.grf"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Precision: 4,
			Format:    FormatText,
		},
	}
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalidConfig, err)
	}
	if c.Output.Format != FormatText && c.Output.Format != FormatYAML {
		return fmt.Errorf("%w: output.format %q (want %s or %s)", ErrInvalidConfig, c.Output.Format, FormatText, FormatYAML)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: output.precision %d (want 0..%d)", ErrInvalidConfig, c.Output.Precision, maxPrecision)
	}
	if c.Model.AnimTimeMs < 0 {
		return fmt.Errorf("%w: model.anim_time_ms %g is negative", ErrInvalidConfig, c.Model.AnimTimeMs)
	}
	return nil
}

// Package config handles trackgen configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/runtrack/internal/logger"
	"github.com/Faultbox/runtrack/internal/runner"
	"github.com/Faultbox/runtrack/internal/track"
)

// Output formats understood by trackgen.
const (
	FormatOBJ  = "obj"
	FormatPB   = "pb"
	FormatYAML = "yaml"
)

// Config holds all trackgen settings.
type Config struct {
	Track   TrackConfig   `yaml:"track"`
	Runner  runner.Config `yaml:"runner"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// TrackConfig holds the generation request: point count, seed and shape.
type TrackConfig struct {
	PointCount int    `yaml:"point_count"`
	Seed       uint64 `yaml:"seed"` // 0 = unseeded

	track.Params `yaml:",inline"`
}

// OutputConfig selects where generated data is written.
type OutputConfig struct {
	Path   string `yaml:"path"` // empty = stdout
	Format string `yaml:"format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // log file encoding: console or json
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Track: TrackConfig{
			PointCount: 50,
			Params:     track.DefaultParams(),
		},
		Runner: runner.DefaultConfig(),
		Output: OutputConfig{
			Format: FormatOBJ,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks values that would otherwise fail deep inside generation.
func (c *Config) Validate() error {
	if c.Track.PointCount < track.MinPointCount {
		return fmt.Errorf("track.point_count: %w: %d", track.ErrInvalidPointCount, c.Track.PointCount)
	}
	if err := c.Track.Params.Validate(); err != nil {
		return fmt.Errorf("track: %w", err)
	}
	switch c.Output.Format {
	case FormatOBJ, FormatPB, FormatYAML:
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// TrackParams returns the shape parameters for the generator.
func (c *Config) TrackParams() track.Params {
	return c.Track.Params
}

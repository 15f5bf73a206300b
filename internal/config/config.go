// Package config handles exporter configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export" envPrefix:"EXPORT_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
}

// ExportConfig mirrors the exporter node's parameters.
type ExportConfig struct {
	File      string `yaml:"file" env:"FILE"`   // Output terrain path; empty disables export
	Remap     bool   `yaml:"remap" env:"REMAP"` // Remap InRange onto the 16-bit height range
	InRange   Range  `yaml:"in_range" env:"IN_RANGE"`
	AutoRange bool   `yaml:"auto_range" env:"AUTO_RANGE"` // Replace InRange with the field's min/max
	Field     string `yaml:"field" env:"FIELD"`           // Volume name to export
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"LEVEL"`
	LogFile string `yaml:"log_file" env:"FILE"`
}

// Range is a [low, high] remap domain. Its text form is "low,high".
type Range [2]float64

// Low returns the lower bound.
func (r Range) Low() float64 { return r[0] }

// High returns the upper bound.
func (r Range) High() float64 { return r[1] }

// String returns the text form.
func (r Range) String() string {
	return strconv.FormatFloat(r[0], 'g', -1, 64) + "," + strconv.FormatFloat(r[1], 'g', -1, 64)
}

// MarshalText implements encoding.TextMarshaler.
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Range) UnmarshalText(text []byte) error {
	low, high, ok := strings.Cut(string(text), ",")
	if !ok {
		return fmt.Errorf("range %q: expected low,high", text)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(low), 64)
	if err != nil {
		return fmt.Errorf("range %q: low: %w", text, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(high), 64)
	if err != nil {
		return fmt.Errorf("range %q: high: %w", text, err)
	}
	*r = Range{lo, hi}
	return nil
}

// Default returns a Config with the exporter node's default parameter values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			File:      "",
			Remap:     true,
			InRange:   Range{0, 200},
			AutoRange: false,
			Field:     "height",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that cannot be fixed at export time.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Export.Field) == "" {
		return fmt.Errorf("export.field must not be empty")
	}
	return nil
}

package logger

import (
	"github.com/kbukum/fieldflow/validation"
)

var (
	levels  = []string{"debug", "info", "warn", "error", "fatal", "trace", "disabled"}
	formats = []string{"json", "console", "text"}
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	v := validation.New().
		Required("logging.level", c.Level).
		OneOf("logging.level", c.Level, levels).
		Required("logging.format", c.Format).
		OneOf("logging.format", c.Format, formats)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

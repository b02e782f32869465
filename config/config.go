package config

import (
	"fmt"
	"time"

	"github.com/kbukum/fieldflow/logger"
	"github.com/kbukum/fieldflow/validation"
)

// Config is the top-level fieldflow configuration.
type Config struct {
	Name        string         `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string         `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config  `yaml:"logging" mapstructure:"logging"`
	Executor    ExecutorConfig `yaml:"executor" mapstructure:"executor"`
	Schema      SchemaConfig   `yaml:"schema" mapstructure:"schema"`
}

// ExecutorConfig tunes wave execution.
type ExecutorConfig struct {
	// MaxParallel limits concurrent fields per wave (0 = unlimited).
	MaxParallel int `yaml:"max_parallel" mapstructure:"max_parallel" validate:"gte=0"`
	// FieldTimeout bounds a single field evaluation (0 = no limit).
	FieldTimeout time.Duration `yaml:"field_timeout" mapstructure:"field_timeout" validate:"gte=0"`
	Tracing      bool          `yaml:"tracing" mapstructure:"tracing"`
	Metrics      bool          `yaml:"metrics" mapstructure:"metrics"`
}

// SchemaConfig locates schema documents.
type SchemaConfig struct {
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "fieldflow"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if len(c.Schema.Dirs) == 0 {
		c.Schema.Dirs = []string{"./schemas"}
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

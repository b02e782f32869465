package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultEnvPrefix  = "FIELDFLOW"
	defaultConfigName = "fieldflow"
)

// LoaderConfig holds optional file overrides.
type LoaderConfig struct {
	ConfigFile  string   // Direct config file path (optional)
	EnvFile     string   // .env file loaded before reading the environment (optional)
	EnvPrefix   string   // Environment variable prefix
	SearchPaths []string // Directories searched for fieldflow.{yml,yaml,json}
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets a .env file to load.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix overrides the FIELDFLOW environment prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// WithSearchPaths sets the directories searched when no config file is given.
func WithSearchPaths(dirs ...string) LoaderOption {
	return func(lc *LoaderConfig) { lc.SearchPaths = dirs }
}

// Load reads configuration from file and environment, applies defaults and
// validates the result. A missing config file is not an error when none
// was set explicitly.
func Load(opts ...LoaderOption) (*Config, error) {
	lc := LoaderConfig{
		EnvPrefix:   defaultEnvPrefix,
		SearchPaths: []string{".", "./config"},
	}
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.EnvFile != "" {
		if err := godotenv.Load(lc.EnvFile); err != nil {
			return nil, fmt.Errorf("config: loading env file %s: %w", lc.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(lc.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", lc.ConfigFile, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		for _, dir := range lc.SearchPaths {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "fieldflow")
	v.SetDefault("environment", "development")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.no_color", false)
	v.SetDefault("logging.timestamp", true)
	v.SetDefault("logging.caller", false)
	v.SetDefault("executor.max_parallel", 0)
	v.SetDefault("executor.field_timeout", "0s")
	v.SetDefault("executor.tracing", false)
	v.SetDefault("executor.metrics", false)
	v.SetDefault("schema.dirs", []string{"./schemas"})
}

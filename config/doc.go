// Package config loads fieldflow configuration.
//
// It uses Viper to read a YAML (or JSON/TOML) file and environment
// variables, and can preload a .env file with godotenv. Environment
// variables use the FIELDFLOW_ prefix with underscores for nesting
// (e.g. FIELDFLOW_EXECUTOR_MAX_PARALLEL).
//
// # Usage
//
//	cfg, err := config.Load(config.WithConfigFile("fieldflow.yml"))
package config

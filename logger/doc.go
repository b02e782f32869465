// Package logger provides structured logging for fieldflow using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "fieldflow").WithComponent("executor")
//	log.Info("wave completed", logger.Fields(logger.FieldWave, 1))
package logger

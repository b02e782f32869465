// Package errors provides the structured error type shared by the fieldflow
// packages. Schema problems and execution failures are reported as *AppError
// values carrying a machine-readable code and optional details.
package errors

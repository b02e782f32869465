// Package bootstrap wires fieldflow from a single configuration: it
// initializes logging, builds the schema loader over the configured
// directories and the wave executor, and runs named schemas end to end.
package bootstrap

// Package executor evaluates a field catalog wave by wave.
//
// The resolver decides the order; the executor runs it. Every field of a
// wave is evaluated concurrently (bounded by MaxParallel) and the whole wave
// finishes before the next one starts, so a transformation always sees the
// final values of the fields it references.
//
// Transformation logic itself (currency lookups, model calls) is supplied by
// the caller as Transformer implementations registered per field name or
// field type. A catalog with dependency diagnostics is rejected before any
// transformer runs.
package executor

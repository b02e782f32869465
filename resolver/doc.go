// Package resolver discovers, validates and orders the references between
// schema fields.
//
// Transformation fields reference other fields inside their configuration,
// either inline in string values ("Convert {Price} to EUR") or through
// column descriptors ({"type": "column", "value": "Price"}). The resolver
// turns those references into a dependency graph and schedules the fields
// into waves: every field of a wave only depends on fields of earlier waves,
// so the fields of one wave may be evaluated concurrently.
//
// Everything here is a pure function over a snapshot of the field catalog.
//
//	if diags := resolver.ValidateDependencies(fields); len(diags) > 0 {
//	    return diags
//	}
//	waves := resolver.TopologicalSort(resolver.BuildDependencyGraph(fields))
//
// Plan bundles those steps and additionally fails when the schedule does
// not cover the whole catalog.
package resolver

package resolver

import (
	"github.com/kbukum/fieldflow/errors"
	"github.com/kbukum/fieldflow/field"
)

// Schedule is a wave schedule together with the graph it was built from.
type Schedule struct {
	Graph *Graph
	Waves []Wave

	waveOf map[string]int
}

// NewSchedule sorts g into waves without validating it first.
func NewSchedule(g *Graph) *Schedule {
	s := &Schedule{Graph: g, Waves: TopologicalSort(g), waveOf: make(map[string]int, len(g.Order))}
	for _, w := range s.Waves {
		for _, f := range w.Fields {
			s.waveOf[f.ID] = w.Number
		}
	}
	return s
}

// Scheduled returns the number of fields placed in a wave.
func (s *Schedule) Scheduled() int {
	return len(s.waveOf)
}

// Complete reports whether every node of the graph was scheduled.
func (s *Schedule) Complete() bool {
	return s.Scheduled() == len(s.Graph.Order)
}

// WaveOf returns the wave number of a field id.
func (s *Schedule) WaveOf(id string) (int, bool) {
	n, ok := s.waveOf[id]
	return n, ok
}

// Plan validates fields, builds their dependency graph and schedules it.
//
// A catalog with dependency diagnostics returns a DEPENDENCY_INVALID error
// whose "diagnostics" detail holds the []DependencyError. A schedule that
// does not cover every field of the catalog, including fields whose id
// repeats an earlier one, returns INCOMPLETE_SCHEDULE.
func Plan(fields []field.Field) (*Schedule, error) {
	if diags := ValidateDependencies(fields); len(diags) > 0 {
		return nil, errors.DependencyInvalid(len(diags), diags)
	}

	// Duplicate ids collapse into one node, so completeness is measured
	// against the catalog rather than the graph.
	s := NewSchedule(BuildDependencyGraph(fields))
	if !s.Complete() || s.Scheduled() < len(fields) {
		return nil, errors.IncompleteSchedule(s.Scheduled(), len(fields))
	}
	return s, nil
}

// Diagnostics extracts the dependency diagnostics carried by an error
// returned from Plan.
func Diagnostics(err error) []DependencyError {
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeDependencyInvalid {
		return nil
	}
	diags, _ := appErr.Details["diagnostics"].([]DependencyError)
	return diags
}

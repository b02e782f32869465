package executor

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/fieldflow/field"
)

// Results is the per-run value store, keyed by field id. Only the engine
// writes to it; transformers read dependency values through Inputs.
type Results struct {
	mu     sync.RWMutex
	values map[string]field.Value
}

// NewResults creates an empty store.
func NewResults() *Results {
	return &Results{values: make(map[string]field.Value)}
}

// Get retrieves a value by field id.
func (r *Results) Get(id string) (field.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[id]
	return v, ok
}

// Set stores a value by field id.
func (r *Results) Set(id string, v field.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[id] = v
}

// Snapshot returns a copy of all stored values.
func (r *Results) Snapshot() map[string]field.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]field.Value, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Status is the outcome of one field evaluation.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result holds the outcome of a run.
type Result struct {
	Fields   map[string]FieldResult
	Waves    int
	Duration time.Duration
}

// FieldResult holds the outcome of a single field.
type FieldResult struct {
	FieldID  string
	Name     string
	Wave     int
	Status   Status
	Value    field.Value
	Duration time.Duration
	Error    error
}

// Value returns the final value of a field id.
func (r *Result) Value(id string) (field.Value, bool) {
	fr, ok := r.Fields[id]
	if !ok || fr.Status != StatusCompleted {
		return field.Value{}, false
	}
	return fr.Value, true
}

// ByStatus returns the field results with the given status, ordered by wave
// then name.
func (r *Result) ByStatus(status Status) []FieldResult {
	var out []FieldResult
	for _, fr := range r.Fields {
		if fr.Status == status {
			out = append(out, fr)
		}
	}
	sortFieldResults(out)
	return out
}

// OK reports whether every field completed.
func (r *Result) OK() bool {
	for _, fr := range r.Fields {
		if fr.Status != StatusCompleted {
			return false
		}
	}
	return true
}

func sortFieldResults(frs []FieldResult) {
	slices.SortFunc(frs, func(a, b FieldResult) int {
		return cmp.Or(cmp.Compare(a.Wave, b.Wave), cmp.Compare(a.Name, b.Name))
	})
}

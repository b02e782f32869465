package executor

import (
	"context"
	"sort"
	"sync"

	"github.com/kbukum/fieldflow/field"
)

// Transformer computes the value of a transformation field.
type Transformer interface {
	Transform(ctx context.Context, f field.Field, in Inputs) (field.Value, error)
}

// TransformerFunc adapts a function to Transformer.
type TransformerFunc func(ctx context.Context, f field.Field, in Inputs) (field.Value, error)

// Transform calls fn.
func (fn TransformerFunc) Transform(ctx context.Context, f field.Field, in Inputs) (field.Value, error) {
	return fn(ctx, f, in)
}

// Inputs holds the final values of the fields a transformation depends on.
type Inputs struct {
	byID   map[string]field.Value
	byName map[string]string
	order  []string
}

func newInputs(deps []field.Field, results *Results) Inputs {
	in := Inputs{
		byID:   make(map[string]field.Value, len(deps)),
		byName: make(map[string]string, len(deps)),
		order:  make([]string, 0, len(deps)),
	}
	for _, d := range deps {
		v, _ := results.Get(d.ID)
		in.byID[d.ID] = v
		in.byName[d.Name] = d.ID
		in.order = append(in.order, d.Name)
	}
	return in
}

// Get returns the value of a dependency by name or id.
func (in Inputs) Get(ref string) (field.Value, bool) {
	if id, ok := in.byName[ref]; ok {
		return in.byID[id], true
	}
	v, ok := in.byID[ref]
	return v, ok
}

// Names returns dependency names in catalog order.
func (in Inputs) Names() []string {
	return append([]string(nil), in.order...)
}

// Len returns the number of dependencies.
func (in Inputs) Len() int { return len(in.order) }

// Registry maps fields to transformers. A transformer registered for a
// field name takes precedence over one registered for the field's type.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Transformer
	byType map[field.Type]Transformer
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Transformer),
		byType: make(map[field.Type]Transformer),
	}
}

// RegisterName registers a transformer for the field with the given name.
func (r *Registry) RegisterName(name string, t Transformer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = t
}

// RegisterType registers a transformer for every field of a type.
func (r *Registry) RegisterType(typ field.Type, t Transformer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[typ] = t
}

// Lookup finds the transformer for f.
func (r *Registry) Lookup(f field.Field) (Transformer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.byName[f.Name]; ok {
		return t, true
	}
	t, ok := r.byType[f.Type]
	return t, ok
}

// List returns sorted registration keys, names as "name:<n>" and types as
// "type:<t>".
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.byName)+len(r.byType))
	for name := range r.byName {
		keys = append(keys, "name:"+name)
	}
	for typ := range r.byType {
		keys = append(keys, "type:"+string(typ))
	}
	sort.Strings(keys)
	return keys
}

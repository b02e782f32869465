package executor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kbukum/fieldflow/field"
)

// --- test helpers ---

func leaf(name string) field.Field {
	return field.Field{ID: "id-" + name, Name: name, Type: field.TypeNumber}
}

// sumOf builds a transformation whose prompt references every ref.
func sumOf(name string, refs ...string) field.Field {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = "{" + ref + "}"
	}
	cfg := field.Map(field.E("prompt", field.String(strings.Join(parts, " + "))))
	return field.Field{ID: "id-" + name, Name: name, Type: field.TypeNumber, IsTransformation: true, TransformationConfig: cfg}
}

// sum adds every numeric input.
var sum = TransformerFunc(func(_ context.Context, f field.Field, in Inputs) (field.Value, error) {
	var total float64
	for _, name := range in.Names() {
		v, _ := in.Get(name)
		n, ok := v.AsNumber()
		if !ok {
			return field.Value{}, fmt.Errorf("%s: input %s is not a number", f.Name, name)
		}
		total += n
	}
	return field.Number(total), nil
})

func numbers(kvs ...interface{}) map[string]field.Value {
	out := make(map[string]field.Value, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		out[kvs[i].(string)] = field.Number(float64(kvs[i+1].(int)))
	}
	return out
}

func number(t testing.TB, r *Result, id string) float64 {
	t.Helper()
	v, ok := r.Value(id)
	if !ok {
		t.Fatalf("no value for %s (status %q)", id, r.Fields[id].Status)
	}
	n, ok := v.AsNumber()
	if !ok {
		t.Fatalf("value of %s is %s, not a number", id, v.Kind())
	}
	return n
}

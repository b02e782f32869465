package resolver

import (
	"fmt"
	"strings"

	"github.com/kbukum/fieldflow/field"
)

// ErrorKind tags a DependencyError.
type ErrorKind string

const (
	KindCircular      ErrorKind = "circular"
	KindMissing       ErrorKind = "missing"
	KindSelfReference ErrorKind = "self-reference"
)

// DependencyError is a diagnostic about one field's references. It is a
// user configuration problem, fixed by editing the schema.
type DependencyError struct {
	Kind      ErrorKind `json:"kind"`
	FieldID   string    `json:"field_id"`
	FieldName string    `json:"field_name"`
	// Reference is the unresolved token of a missing reference.
	Reference string `json:"reference,omitempty"`
	// Cycle lists field names along a circular dependency, with the first
	// name repeated at the end.
	Cycle []string `json:"cycle,omitempty"`
}

func (e DependencyError) Error() string {
	switch e.Kind {
	case KindCircular:
		return fmt.Sprintf("field %q: circular dependency %s", e.FieldName, strings.Join(e.Cycle, " -> "))
	case KindMissing:
		return fmt.Sprintf("field %q: references unknown field %q", e.FieldName, e.Reference)
	case KindSelfReference:
		return fmt.Sprintf("field %q: references itself", e.FieldName)
	default:
		return fmt.Sprintf("field %q: %s", e.FieldName, e.Kind)
	}
}

// Circular returns a circular dependency diagnostic anchored at f.
func Circular(f field.Field, cycle []string) DependencyError {
	return DependencyError{Kind: KindCircular, FieldID: f.ID, FieldName: f.Name, Cycle: cycle}
}

// Missing returns a diagnostic for a reference that names no known field.
func Missing(f field.Field, ref string) DependencyError {
	return DependencyError{Kind: KindMissing, FieldID: f.ID, FieldName: f.Name, Reference: ref}
}

// SelfReference returns a diagnostic for a field that references itself.
func SelfReference(f field.Field) DependencyError {
	return DependencyError{Kind: KindSelfReference, FieldID: f.ID, FieldName: f.Name}
}

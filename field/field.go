package field

import (
	"fmt"

	"github.com/google/uuid"
)

// Type tags the kind of value a field holds.
type Type string

// Leaf types.
const (
	TypeText     Type = "text"
	TypeNumber   Type = "number"
	TypeDate     Type = "date"
	TypeBoolean  Type = "boolean"
	TypeCurrency Type = "currency"
)

// Composite types. Their children are nested one level deep and do not
// take part in dependency resolution.
const (
	TypeObject Type = "object"
	TypeList   Type = "list"
	TypeTable  Type = "table"
)

// Types lists every known field type.
var Types = []Type{TypeText, TypeNumber, TypeDate, TypeBoolean, TypeCurrency, TypeObject, TypeList, TypeTable}

// IsComposite reports whether t holds child fields.
func (t Type) IsComposite() bool {
	return t == TypeObject || t == TypeList || t == TypeTable
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Field is one entry of an extraction schema.
type Field struct {
	// ID is stable and system-assigned.
	ID string `json:"id" yaml:"id" validate:"required"`
	// Name is user-editable and used by human-written references.
	Name string `json:"name" yaml:"name" validate:"required"`
	Type Type   `json:"type" yaml:"type" validate:"required,field_type"`
	// IsTransformation marks fields whose value is computed from other fields.
	IsTransformation bool `json:"is_transformation" yaml:"is_transformation"`
	// TransformationConfig is only read when IsTransformation is set.
	TransformationConfig Value   `json:"transformation_config,omitempty" yaml:"transformation_config,omitempty"`
	Children             []Field `json:"children,omitempty" yaml:"children,omitempty" validate:"dive"`
}

// New creates a leaf field with a fresh id.
func New(name string, t Type) Field {
	return Field{ID: NewID(), Name: name, Type: t}
}

// NewTransformation creates a transformation field with a fresh id.
func NewTransformation(name string, t Type, cfg Value) Field {
	return Field{ID: NewID(), Name: name, Type: t, IsTransformation: true, TransformationConfig: cfg}
}

// NewID returns a new field identifier.
func NewID() string {
	return uuid.NewString()
}

// Config returns the transformation configuration, or null when the field
// is not a transformation.
func (f Field) Config() Value {
	if !f.IsTransformation {
		return Value{}
	}
	return f.TransformationConfig
}

// Matches reports whether ref names this field by name or id.
func (f Field) Matches(ref string) bool {
	return ref != "" && (ref == f.Name || ref == f.ID)
}

func (f Field) String() string {
	return fmt.Sprintf("%s(%s)", f.Name, f.ID)
}

// Names returns the names of fields in order.
func Names(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

package schema

import (
	"github.com/google/uuid"

	"github.com/kbukum/fieldflow/field"
)

// Document is a schema definition.
type Document struct {
	// Name is the document identifier used by includes.
	Name    string `json:"name" yaml:"name" validate:"required"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Includes lists other documents whose fields are merged in first.
	Includes []string   `json:"includes,omitempty" yaml:"includes,omitempty"`
	Fields   []FieldDef `json:"fields" yaml:"fields" validate:"dive"`
}

// FieldDef defines one field of a document.
type FieldDef struct {
	// ID is optional; a stable id derived from the document and field name
	// is used when empty.
	ID   string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name string     `json:"name" yaml:"name" validate:"required"`
	Type field.Type `json:"type" yaml:"type" validate:"required,field_type"`
	// IsTransformation is implied by a non-null Transformation.
	IsTransformation bool        `json:"is_transformation,omitempty" yaml:"is_transformation,omitempty"`
	Transformation   field.Value `json:"transformation,omitempty" yaml:"transformation,omitempty"`
	Children         []FieldDef  `json:"children,omitempty" yaml:"children,omitempty" validate:"dive"`
}

// idNamespace seeds derived field ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kbukum/fieldflow/schema"))

// Catalog converts the document's own fields (ignoring includes) into
// fields.
func (d *Document) Catalog() []field.Field {
	return convertFields(d.Name, "", d.Fields)
}

func convertFields(docName, parent string, defs []FieldDef) []field.Field {
	out := make([]field.Field, 0, len(defs))
	for _, def := range defs {
		path := parent + "/" + def.Name
		id := def.ID
		if id == "" {
			id = uuid.NewSHA1(idNamespace, []byte(docName+path)).String()
		}
		f := field.Field{
			ID:               id,
			Name:             def.Name,
			Type:             def.Type,
			IsTransformation: def.IsTransformation || !def.Transformation.IsNull(),
		}
		if f.IsTransformation {
			f.TransformationConfig = def.Transformation
		}
		if len(def.Children) > 0 {
			f.Children = convertFields(docName, path, def.Children)
		}
		out = append(out, f)
	}
	return out
}

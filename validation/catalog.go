package validation

import (
	"fmt"

	"github.com/kbukum/fieldflow/field"
)

// ValidateCatalog checks the invariants the resolver relies on but does not
// enforce: every field has an id, a name and a known type, ids and names are
// unique within the catalog, and only transformation fields carry a
// transformation config. Children of composite fields are checked for the
// same per-field rules, with names unique among siblings.
func ValidateCatalog(fields []field.Field) error {
	v := New()
	checkFields(v, "fields", fields, make(map[string]string))
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func checkFields(v *Validator, prefix string, fields []field.Field, ids map[string]string) {
	names := make(map[string]string, len(fields))
	for i, f := range fields {
		path := fmt.Sprintf("%s[%d]", prefix, i)

		v.Required(path+".id", f.ID)
		v.Required(path+".name", f.Name)
		v.Custom(f.Type.Valid(), path+".type", fmt.Sprintf("unknown field type %q", f.Type))

		if f.ID != "" {
			if prev, dup := ids[f.ID]; dup {
				v.AddError(path+".id", fmt.Sprintf("duplicates the id of %s", prev))
			} else {
				ids[f.ID] = path
			}
		}
		if f.Name != "" {
			if prev, dup := names[f.Name]; dup {
				v.AddError(path+".name", fmt.Sprintf("duplicates the name of %s", prev))
			} else {
				names[f.Name] = path
			}
		}

		v.Custom(f.IsTransformation || f.TransformationConfig.IsNull(),
			path+".transformation_config", "is only allowed on transformation fields")

		if len(f.Children) > 0 {
			v.Custom(f.Type.IsComposite(), path+".children", "are only allowed on object, list and table fields")
			checkFields(v, path+".children", f.Children, ids)
		}
	}
}

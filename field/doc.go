// Package field models the fields of a user-defined extraction schema.
//
// A Field is either a leaf value taken from document extraction or a
// transformation whose value is computed from other fields. Transformation
// configuration is free-form, user-authored data and is held as a Value, a
// JSON-like sum type (null, bool, number, string, ordered map, list) that
// keeps the key order of the source document.
//
//	cfg, err := field.ParseValue([]byte(`{"prompt": "Convert {Price} to EUR"}`))
//	total := field.NewTransformation("Total", field.TypeCurrency, cfg)
package field

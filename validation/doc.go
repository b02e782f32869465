// Package validation checks schema documents, field catalogs and
// configuration structs.
//
// Struct tag validation uses go-playground/validator and registers the
// field_type tag for field.Type values:
//
//	err := validation.Validate(cfg)
//
// Programmatic validation collects field errors:
//
//	v := validation.New()
//	v.Required("name", name)
//	err := v.Validate()
//
// ValidateCatalog enforces the uniqueness rules a schema editor is expected
// to uphold before handing a catalog to the resolver.
package validation

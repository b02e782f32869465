package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/fieldflow/errors"
	"github.com/kbukum/fieldflow/field"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "Price")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "   ")
	if !v2.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"json", "console"}
	if New().OneOf("format", "json", allowed).HasErrors() {
		t.Error("expected json to be allowed")
	}
	if New().OneOf("format", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	v := New().OneOf("format", "xml", allowed)
	if !v.HasErrors() || !strings.Contains(v.Errors()[0].Message, "json, console") {
		t.Errorf("unexpected errors %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil without errors")
	}
	v := New().Custom(false, "a", "bad").Required("b", "")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if appErr.Message != "a: bad; b: is required" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

type sample struct {
	Name    string     `yaml:"name" validate:"required"`
	Kind    field.Type `yaml:"kind" validate:"required,field_type"`
	Workers int        `json:"workers" validate:"gte=0"`
	Nested  []inner    `yaml:"nested" validate:"dive"`
}

type inner struct {
	Label string `yaml:"label" validate:"required"`
}

func TestStructValidateValid(t *testing.T) {
	s := sample{Name: "x", Kind: field.TypeCurrency, Nested: []inner{{Label: "a"}}}
	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	s := sample{Kind: "blob", Workers: -1, Nested: []inner{{}}}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{
		"name: is required",
		"kind: must be a known field type",
		"workers: must be at least 0",
		"nested[0].label: is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatal("expected AppError")
	}
	if fields, _ := appErr.Details["fields"].([]FieldError); len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %v", appErr.Details["fields"])
	}
}

func TestValidateCatalog(t *testing.T) {
	valid := []field.Field{
		{ID: "1", Name: "Price", Type: field.TypeCurrency},
		{ID: "2", Name: "Total", Type: field.TypeCurrency, IsTransformation: true,
			TransformationConfig: field.String("{Price}")},
		{ID: "3", Name: "Items", Type: field.TypeTable, Children: []field.Field{
			{ID: "4", Name: "Price", Type: field.TypeNumber},
		}},
	}
	if err := ValidateCatalog(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		fields []field.Field
		want   string
	}{
		{"duplicate id", []field.Field{
			{ID: "1", Name: "A", Type: field.TypeText},
			{ID: "1", Name: "B", Type: field.TypeText},
		}, "fields[1].id: duplicates the id of fields[0]"},
		{"duplicate name", []field.Field{
			{ID: "1", Name: "A", Type: field.TypeText},
			{ID: "2", Name: "A", Type: field.TypeText},
		}, "fields[1].name: duplicates the name of fields[0]"},
		{"missing name", []field.Field{{ID: "1", Type: field.TypeText}}, "fields[0].name: is required"},
		{"unknown type", []field.Field{{ID: "1", Name: "A", Type: "blob"}}, `unknown field type "blob"`},
		{"config on leaf", []field.Field{
			{ID: "1", Name: "A", Type: field.TypeText, TransformationConfig: field.String("{B}")},
		}, "fields[0].transformation_config"},
		{"children on leaf", []field.Field{
			{ID: "1", Name: "A", Type: field.TypeText, Children: []field.Field{{ID: "2", Name: "B", Type: field.TypeText}}},
		}, "fields[0].children"},
		{"child id collides with top level", []field.Field{
			{ID: "1", Name: "A", Type: field.TypeObject, Children: []field.Field{{ID: "1", Name: "B", Type: field.TypeText}}},
		}, "fields[0].children[0].id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCatalog(tc.fields)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

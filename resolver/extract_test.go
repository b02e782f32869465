package resolver

import (
	"reflect"
	"testing"

	"github.com/kbukum/fieldflow/field"
)

func TestExtractReferences(t *testing.T) {
	tests := []struct {
		name string
		cfg  field.Value
		want []string
	}{
		{"null config", field.Null(), nil},
		{"scalar number", field.Number(5), nil},
		{"plain string", field.String("no braces here"), nil},
		{"single brace", field.String("{Price}"), []string{"Price"}},
		{"several in one string", field.String("Sum {Price} and {Tax}, then {Price} again"), []string{"Price", "Tax"}},
		{"trims spaces", field.String("{ Price }"), []string{"Price"}},
		{"empty braces ignored", field.String("{} { }"), nil},
		{"nested braces take the inner", field.String("{{Price}}"), []string{"Price"}},
		{
			"column descriptor",
			column("Price"),
			[]string{"Price"},
		},
		{
			"descriptor with other type is not a reference",
			field.Map(field.E("type", field.String("literal")), field.E("value", field.String("Price"))),
			nil,
		},
		{
			"descriptor with numeric value",
			field.Map(field.E("type", field.String("column")), field.E("value", field.Number(42))),
			[]string{"42"},
		},
		{
			"descriptor with composite value is ignored",
			field.Map(field.E("type", field.String("column")), field.E("value", field.List(field.String("Price")))),
			nil,
		},
		{
			"map keys are not scanned",
			field.Map(field.E("{Key}", field.String("value"))),
			nil,
		},
		{
			"lists and nested maps",
			field.List(
				field.String("{A}"),
				field.Map(field.E("deep", field.List(field.String("x {B} y")))),
				column("C"),
			),
			[]string{"A", "B", "C"},
		},
		{
			"descriptor siblings still scanned",
			field.Map(
				field.E("type", field.String("column")),
				field.E("value", field.String("Price")),
				field.E("label", field.String("from {Currency}")),
			),
			[]string{"Price", "Currency"},
		},
		{
			"booleans and nulls carry nothing",
			field.Map(field.E("a", field.Bool(true)), field.E("b", field.Null())),
			nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractReferences(tc.cfg)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestExtractReferences_NoFalsePositivesFromNesting(t *testing.T) {
	cfg, err := field.ParseValue([]byte(`{"amount": {"type": "column", "value": "Price"}, "note": "no braces here"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := ExtractReferences(cfg)
	if !reflect.DeepEqual(got, []string{"Price"}) {
		t.Fatalf("expected exactly [Price], got %v", got)
	}
}

func TestExtractReferences_FirstSeenOrderAcrossForms(t *testing.T) {
	cfg := field.Map(
		field.E("amount", column("Tax")),
		field.E("prompt", field.String("{Price} plus {Tax}")),
	)
	got := ExtractReferences(cfg)
	if !reflect.DeepEqual(got, []string{"Tax", "Price"}) {
		t.Errorf("expected [Tax Price], got %v", got)
	}
}

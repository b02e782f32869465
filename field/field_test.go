package field

import (
	"testing"

	"github.com/google/uuid"
)

func TestNew_AssignsUUID(t *testing.T) {
	f := New("Price", TypeCurrency)
	if _, err := uuid.Parse(f.ID); err != nil {
		t.Fatalf("expected uuid id, got %q: %v", f.ID, err)
	}
	if f.IsTransformation {
		t.Error("expected leaf field")
	}
	if g := New("Price", TypeCurrency); g.ID == f.ID {
		t.Error("expected distinct ids")
	}
}

func TestConfig_OnlyForTransformations(t *testing.T) {
	cfg := Map(E("prompt", String("{Price}")))
	leaf := Field{ID: "1", Name: "Price", Type: TypeNumber, TransformationConfig: cfg}
	if !leaf.Config().IsNull() {
		t.Error("expected leaf config to be ignored")
	}
	tr := NewTransformation("Total", TypeNumber, cfg)
	if !tr.Config().Equal(cfg) {
		t.Error("expected transformation config")
	}
}

func TestMatches(t *testing.T) {
	f := Field{ID: "id-1", Name: "Price"}
	tests := []struct {
		ref  string
		want bool
	}{
		{"Price", true},
		{"id-1", true},
		{"price", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := f.Matches(tc.ref); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.ref, got, tc.want)
		}
	}
}

func TestType(t *testing.T) {
	if !TypeTable.IsComposite() || TypeText.IsComposite() {
		t.Error("unexpected composite classification")
	}
	if !TypeDate.Valid() || Type("blob").Valid() {
		t.Error("unexpected validity")
	}
}

func TestNames(t *testing.T) {
	names := Names([]Field{{Name: "A"}, {Name: "B"}})
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("unexpected names %v", names)
	}
}

package resolver

import (
	"reflect"
	"testing"

	"github.com/kbukum/fieldflow/field"
)

func TestDependenciesOf(t *testing.T) {
	fields := []field.Field{
		leaf("Price"),
		leaf("Tax"),
		transform("Total", field.List(prompt("{Tax} {Price} {Ghost} {Total}"), column("id-Tax"))),
	}
	deps := DependenciesOf(fields[2], fields)
	if !reflect.DeepEqual(field.Names(deps), []string{"Tax", "Price"}) {
		t.Fatalf("expected [Tax Price], got %v", field.Names(deps))
	}
	if got := DependenciesOf(fields[0], fields); len(got) != 0 {
		t.Errorf("leaf field has no dependencies, got %v", got)
	}
}

func TestDependentsOf(t *testing.T) {
	fields := []field.Field{
		leaf("Price"),
		transform("Total", prompt("{Price}")),
		transform("ByID", column("id-Price")),
		transform("Other", prompt("{Tax}")),
		transform("Self", prompt("{Self}")),
	}
	dependents := DependentsOf(fields[0], fields)
	if !reflect.DeepEqual(field.Names(dependents), []string{"Total", "ByID"}) {
		t.Fatalf("expected [Total ByID], got %v", field.Names(dependents))
	}
	if got := DependentsOf(fields[4], fields); len(got) != 0 {
		t.Errorf("a field is not its own dependent, got %v", field.Names(got))
	}
}

func TestDependentsOf_RenameImpact(t *testing.T) {
	price := leaf("Price")
	fields := []field.Field{price, transform("Total", prompt("{Price}"))}

	renamed := price
	renamed.Name = "UnitPrice"
	if got := DependentsOf(renamed, fields); len(got) != 0 {
		t.Errorf("expected rename to orphan name references, got %v", field.Names(got))
	}
}

package resolver

import "github.com/kbukum/fieldflow/field"

// DependenciesOf returns the catalog fields that f references, resolved by
// name or id. Unknown references and references to f itself are left out.
func DependenciesOf(f field.Field, fields []field.Field) []field.Field {
	if !f.IsTransformation {
		return nil
	}
	cat := newCatalog(fields)
	seen := make(map[string]bool)

	var deps []field.Field
	for _, ref := range ExtractReferences(f.Config()) {
		dep, ok := cat.resolve(ref)
		if !ok || dep.ID == f.ID || seen[dep.ID] {
			continue
		}
		seen[dep.ID] = true
		deps = append(deps, dep)
	}
	return deps
}

// DependentsOf returns the transformation fields whose configuration
// references target by name or id, in catalog order. It answers "what
// breaks if target is renamed or deleted".
func DependentsOf(target field.Field, fields []field.Field) []field.Field {
	var dependents []field.Field
	for _, f := range fields {
		if !f.IsTransformation || f.ID == target.ID {
			continue
		}
		for _, ref := range ExtractReferences(f.Config()) {
			if target.Matches(ref) {
				dependents = append(dependents, f)
				break
			}
		}
	}
	return dependents
}

package resolver

import "github.com/kbukum/fieldflow/field"

// ValidateDependencies checks the references of every transformation field
// and returns all diagnostics found.
//
// Checks run in the order self-reference, missing reference, cycle. Cycle
// detection only runs when the first two checks found nothing, since a
// dangling or self-referencing edge makes a cycle report misleading.
func ValidateDependencies(fields []field.Field) []DependencyError {
	cat := newCatalog(fields)

	var diags []DependencyError
	diags = append(diags, findSelfReferences(fields)...)
	diags = append(diags, findMissingReferences(fields, cat)...)
	if len(diags) > 0 {
		return diags
	}
	return findCycles(BuildDependencyGraph(fields))
}

func findSelfReferences(fields []field.Field) []DependencyError {
	var diags []DependencyError
	for _, f := range fields {
		if !f.IsTransformation {
			continue
		}
		for _, ref := range ExtractReferences(f.Config()) {
			if f.Matches(ref) {
				diags = append(diags, SelfReference(f))
				break
			}
		}
	}
	return diags
}

func findMissingReferences(fields []field.Field, cat *catalog) []DependencyError {
	var diags []DependencyError
	for _, f := range fields {
		if !f.IsTransformation {
			continue
		}
		for _, ref := range ExtractReferences(f.Config()) {
			if _, ok := cat.resolve(ref); !ok {
				diags = append(diags, Missing(f, ref))
			}
		}
	}
	return diags
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// findCycles runs a depth-first search over g in catalog order. A back edge
// to a node on the active path yields one circular diagnostic, anchored at
// the node being visited.
func findCycles(g *Graph) []DependencyError {
	state := make(map[string]visitState, len(g.Order))
	var path []string
	var diags []DependencyError

	var visit func(id string)
	visit = func(id string) {
		state[id] = visiting
		path = append(path, id)

		for _, dep := range g.Dependencies(id) {
			switch state[dep] {
			case visiting:
				start := 0
				for i, p := range path {
					if p == dep {
						start = i
						break
					}
				}
				cycle := append(g.names(path[start:]), g.Nodes[dep].Name)
				diags = append(diags, Circular(g.Nodes[id], cycle))
			case unvisited:
				visit(dep)
			}
		}

		path = path[:len(path)-1]
		state[id] = visited
	}

	for _, id := range g.Order {
		if state[id] == unvisited {
			visit(id)
		}
	}
	return diags
}

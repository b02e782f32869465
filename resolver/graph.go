package resolver

import (
	"sort"

	"github.com/kbukum/fieldflow/field"
)

// IDSet is a set of field ids.
type IDSet map[string]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Graph is the dependency graph of a field catalog. Every field is a node;
// only transformation fields have outgoing edges.
type Graph struct {
	// Nodes maps field id to field.
	Nodes map[string]field.Field
	// Edges maps a field id to the ids it depends on.
	Edges map[string]IDSet
	// ReverseEdges maps a field id to the ids that depend on it.
	ReverseEdges map[string]IDSet
	// Order lists node ids in catalog declaration order.
	Order []string

	position map[string]int
}

// BuildDependencyGraph builds the dependency graph of fields. References
// are resolved by name, then by id. Unresolved references and references
// of a field to itself add no edge; ValidateDependencies reports them.
func BuildDependencyGraph(fields []field.Field) *Graph {
	g := &Graph{
		Nodes:        make(map[string]field.Field, len(fields)),
		Edges:        make(map[string]IDSet, len(fields)),
		ReverseEdges: make(map[string]IDSet, len(fields)),
		Order:        make([]string, 0, len(fields)),
		position:     make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if _, dup := g.Nodes[f.ID]; dup {
			continue
		}
		g.Nodes[f.ID] = f
		g.Edges[f.ID] = make(IDSet)
		g.ReverseEdges[f.ID] = make(IDSet)
		g.position[f.ID] = len(g.Order)
		g.Order = append(g.Order, f.ID)
	}

	cat := newCatalog(fields)
	for _, id := range g.Order {
		f := g.Nodes[id]
		if !f.IsTransformation {
			continue
		}
		for _, ref := range ExtractReferences(f.Config()) {
			dep, ok := cat.resolve(ref)
			if !ok || dep.ID == f.ID {
				continue
			}
			g.Edges[f.ID][dep.ID] = struct{}{}
			g.ReverseEdges[dep.ID][f.ID] = struct{}{}
		}
	}

	return g
}

// Dependencies returns the ids id depends on, in catalog order.
func (g *Graph) Dependencies(id string) []string {
	return g.ordered(g.Edges[id])
}

// Dependents returns the ids that depend on id, in catalog order.
func (g *Graph) Dependents(id string) []string {
	return g.ordered(g.ReverseEdges[id])
}

// EdgeCount returns the number of depends-on edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.Edges {
		n += len(deps)
	}
	return n
}

// Equal reports whether g and o have the same nodes, edges and order.
func (g *Graph) Equal(o *Graph) bool {
	if len(g.Order) != len(o.Order) {
		return false
	}
	for i, id := range g.Order {
		if o.Order[i] != id {
			return false
		}
		if !equalSets(g.Edges[id], o.Edges[id]) || !equalSets(g.ReverseEdges[id], o.ReverseEdges[id]) {
			return false
		}
	}
	return true
}

func (g *Graph) ordered(set IDSet) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return g.position[ids[i]] < g.position[ids[j]] })
	return ids
}

func (g *Graph) names(ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = g.Nodes[id].Name
	}
	return names
}

func equalSets(a, b IDSet) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b.Has(id) {
			return false
		}
	}
	return true
}

package resolver

import "github.com/kbukum/fieldflow/field"

// Wave is a set of fields whose dependencies all belong to earlier waves.
type Wave struct {
	Fields []field.Field
	Number int
}

// IDs returns the ids of the wave's fields.
func (w Wave) IDs() []string {
	ids := make([]string, len(w.Fields))
	for i, f := range w.Fields {
		ids[i] = f.ID
	}
	return ids
}

// Names returns the names of the wave's fields.
func (w Wave) Names() []string {
	return field.Names(w.Fields)
}

// TopologicalSort groups the nodes of g into execution waves using Kahn's
// algorithm. Each wave holds every unprocessed node with no unprocessed
// dependency, in catalog order.
//
// g must come from a catalog that passed ValidateDependencies. Given a
// cyclic graph, the nodes on or behind a cycle are never emitted and the
// returned waves cover only part of the catalog; callers that cannot
// guarantee validation should use Plan.
func TopologicalSort(g *Graph) []Wave {
	inDegree := make(map[string]int, len(g.Order))
	for _, id := range g.Order {
		inDegree[id] = len(g.Edges[id])
	}

	processed := make(map[string]bool, len(g.Order))
	var waves []Wave

	for len(processed) < len(g.Order) {
		var ready []string
		for _, id := range g.Order {
			if !processed[id] && inDegree[id] == 0 {
				ready = append(ready, id)
			}
		}
		if len(ready) == 0 {
			break
		}

		wave := Wave{Number: len(waves), Fields: make([]field.Field, 0, len(ready))}
		for _, id := range ready {
			processed[id] = true
			wave.Fields = append(wave.Fields, g.Nodes[id])
		}
		for _, id := range ready {
			for dependent := range g.ReverseEdges[id] {
				inDegree[dependent]--
			}
		}
		waves = append(waves, wave)
	}

	return waves
}

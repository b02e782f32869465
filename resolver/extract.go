package resolver

import (
	"regexp"
	"strings"

	"github.com/kbukum/fieldflow/field"
)

// referencePattern matches {Identifier} inside a string value.
var referencePattern = regexp.MustCompile(`\{([^{}]+)\}`)

const (
	descriptorTypeKey   = "type"
	descriptorValueKey  = "value"
	descriptorColumnTag = "column"
)

// ExtractReferences returns the distinct identifiers referenced by a
// transformation configuration, in first-seen order.
//
// String values anywhere in the configuration are scanned for {Identifier};
// maps shaped like {"type": "column", "value": <identifier>} reference
// <identifier>. Only string leaves are scanned, never map keys or a
// serialized form of the structure. Null or scalar configurations yield
// no references.
func ExtractReferences(cfg field.Value) []string {
	refs := &referenceSet{seen: make(map[string]struct{})}
	collectReferences(cfg, refs)
	return refs.items
}

func collectReferences(v field.Value, refs *referenceSet) {
	switch v.Kind() {
	case field.KindString:
		s, _ := v.AsString()
		for _, m := range referencePattern.FindAllStringSubmatch(s, -1) {
			refs.add(m[1])
		}
	case field.KindMap:
		ref, isDescriptor := columnDescriptor(v)
		if isDescriptor {
			refs.add(ref)
		}
		for _, e := range v.Entries() {
			if isDescriptor && e.Key == descriptorValueKey {
				continue
			}
			collectReferences(e.Value, refs)
		}
	case field.KindList:
		for _, item := range v.Items() {
			collectReferences(item, refs)
		}
	}
}

// columnDescriptor recognizes {"type": "column", "value": <identifier>}.
func columnDescriptor(v field.Value) (string, bool) {
	typ, ok := v.Get(descriptorTypeKey)
	if !ok {
		return "", false
	}
	if tag, _ := typ.AsString(); tag != descriptorColumnTag {
		return "", false
	}
	val, ok := v.Get(descriptorValueKey)
	if !ok {
		return "", false
	}
	switch val.Kind() {
	case field.KindString, field.KindNumber:
		ref := strings.TrimSpace(val.String())
		return ref, ref != ""
	default:
		return "", false
	}
}

type referenceSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *referenceSet) add(ref string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return
	}
	if _, dup := s.seen[ref]; dup {
		return
	}
	s.seen[ref] = struct{}{}
	s.items = append(s.items, ref)
}

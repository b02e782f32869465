package resolver

import "github.com/kbukum/fieldflow/field"

// catalog indexes fields by name and by id. The first occurrence wins when
// names or ids collide.
type catalog struct {
	fields []field.Field
	byName map[string]int
	byID   map[string]int
}

func newCatalog(fields []field.Field) *catalog {
	c := &catalog{
		fields: fields,
		byName: make(map[string]int, len(fields)),
		byID:   make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := c.byName[f.Name]; !dup && f.Name != "" {
			c.byName[f.Name] = i
		}
		if _, dup := c.byID[f.ID]; !dup && f.ID != "" {
			c.byID[f.ID] = i
		}
	}
	return c
}

// resolve looks ref up by name, then by id.
func (c *catalog) resolve(ref string) (field.Field, bool) {
	if i, ok := c.byName[ref]; ok {
		return c.fields[i], true
	}
	if i, ok := c.byID[ref]; ok {
		return c.fields[i], true
	}
	return field.Field{}, false
}

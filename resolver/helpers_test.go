package resolver

import (
	"github.com/kbukum/fieldflow/field"
)

// --- test helpers ---

func leaf(name string) field.Field {
	return field.Field{ID: "id-" + name, Name: name, Type: field.TypeNumber}
}

func transform(name string, cfg field.Value) field.Field {
	return field.Field{ID: "id-" + name, Name: name, Type: field.TypeNumber, IsTransformation: true, TransformationConfig: cfg}
}

func prompt(text string) field.Value {
	return field.Map(field.E("prompt", field.String(text)))
}

func column(ref string) field.Value {
	return field.Map(field.E("type", field.String("column")), field.E("value", field.String(ref)))
}

func waveNames(waves []Wave) [][]string {
	out := make([][]string, len(waves))
	for i, w := range waves {
		out[i] = w.Names()
	}
	return out
}

package field

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// ParseValue decodes a JSON or YAML document into a Value, keeping map key
// order. Valid JSON is decoded with JSON rules; anything else is read as
// YAML. Empty input yields null.
func ParseValue(data []byte) (Value, error) {
	if IsJSON(data) {
		return ParseJSON(data)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, fmt.Errorf("field: parsing value: %w", err)
	}
	return FromNode(&node), nil
}

// IsJSON reports whether data is a single well-formed JSON value.
func IsJSON(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && json.Valid(data)
}

// ParseJSON decodes a JSON document into a Value, keeping map key order.
// A key repeated within one object keeps its first position and takes the
// last value, as encoding/json does for maps.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return Value{}, fmt.Errorf("field: parsing JSON value: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("field: parsing JSON value: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return String(t), nil
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f), nil
		}
		return String(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Value{}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	entries := make([]Entry, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("unexpected object key %v", tok)
		}
		val, err := decodeJSON(dec)
		if err != nil {
			return Value{}, err
		}
		if i, dup := index[key]; dup {
			entries[i].Value = val
			continue
		}
		index[key] = len(entries)
		entries = append(entries, Entry{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: KindMap, entries: entries}, nil
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	items := make([]Value, 0)
	for dec.More() {
		item, err := decodeJSON(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: KindList, items: items}, nil
}

// FromNode converts a parsed YAML node tree into a Value. Unknown or
// undecodable scalars become strings holding their source text.
func FromNode(node *yaml.Node) Value {
	if node == nil {
		return Value{}
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}
		}
		return FromNode(node.Content[0])
	case yaml.AliasNode:
		return FromNode(node.Alias)
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			entries = append(entries, Entry{
				Key:   node.Content[i].Value,
				Value: FromNode(node.Content[i+1]),
			})
		}
		return Value{kind: KindMap, entries: entries}
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, c := range node.Content {
			items = append(items, FromNode(c))
		}
		return Value{kind: KindList, items: items}
	case yaml.ScalarNode:
		return fromScalar(node)
	default:
		return Value{}
	}
}

func fromScalar(node *yaml.Node) Value {
	switch node.ShortTag() {
	case "!!null":
		return Value{}
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err == nil {
			return Bool(b)
		}
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return Number(f)
		}
	}
	return String(node.Value)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	*v = FromNode(node)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Key order is preserved.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Map entries are written in order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool, KindNumber, KindString:
		return json.Marshal(v.Interface())
	case KindMap:
		buf := []byte{'{'}
		for i, e := range v.entries {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, err := json.Marshal(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := e.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, key...)
			buf = append(buf, ':')
			buf = append(buf, val...)
		}
		return append(buf, '}'), nil
	case KindList:
		buf := []byte{'['}
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			val, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, val...)
		}
		return append(buf, ']'), nil
	}
	return nil, fmt.Errorf("field: unknown value kind %s", v.kind)
}

// FromAny converts plain Go data (as produced by encoding/json or a YAML
// decoder) into a Value. Keys of Go maps are sorted since their order is
// not defined. Unsupported types become null.
func FromAny(in any) Value {
	switch x := in.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return String(x.String())
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromAny(item)
		}
		return Value{kind: KindList, items: items}
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Value: FromAny(x[k])}
		}
		return Value{kind: KindMap, entries: entries}
	case map[string]string:
		m := make(map[string]any, len(x))
		for k, s := range x {
			m[k] = s
		}
		return FromAny(m)
	case []string:
		items := make([]Value, len(x))
		for i, s := range x {
			items[i] = String(s)
		}
		return Value{kind: KindList, items: items}
	}
	return fromReflect(reflect.ValueOf(in))
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return FromAny(m)
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = FromAny(rv.Index(i).Interface())
		}
		return Value{kind: KindList, items: items}
	case reflect.Int8, reflect.Int16, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		f, _ := strconv.ParseFloat(fmt.Sprint(rv.Interface()), 64)
		return Number(f)
	case reflect.Pointer:
		if rv.IsNil() {
			return Value{}
		}
		return FromAny(rv.Elem().Interface())
	}
	return Value{}
}

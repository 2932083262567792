// Package jsonsafe converts values of unknown shape into trees built only
// from nil, bool, number, string, []any and map[string]any, so that output
// from external tools can always be encoded as JSON.
package jsonsafe

import (
	"fmt"
	"reflect"
	"strings"
)

// ToSerializable is implemented by values that know their own JSON-safe
// representation. It takes priority over reflection.
type ToSerializable interface {
	ToSerializable() any
}

// FieldEnumerable is implemented by values that can enumerate their public
// fields. It is consulted after ToSerializable and before struct reflection.
type FieldEnumerable interface {
	Fields() map[string]any
}

// maxDepth bounds recursion so that self-referential pointer graphs still
// terminate; past it values degrade to the string fallback.
const maxDepth = 64

// Normalize converts v into a JSON-safe tree. It never panics and never
// fails: values it cannot represent structurally collapse to their debug
// string, which is lossy but always encodable.
func Normalize(v any) any {
	return normalize(v, 0)
}

func normalize(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth >= maxDepth {
		return fallbackString(v)
	}

	switch x := v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x
	}

	// Capability interfaces beat reflection. A panic inside either falls
	// through to the next tier rather than escaping.
	if s, ok := v.(ToSerializable); ok {
		if out, ok := callToSerializable(s); ok {
			return normalize(out, depth+1)
		}
	}
	if f, ok := v.(FieldEnumerable); ok {
		if fields, ok := callFields(f); ok {
			out := make(map[string]any, len(fields))
			for k, fv := range fields {
				out[k] = normalize(fv, depth+1)
			}
			return out
		}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = normalize(rv.Index(i).Interface(), depth+1)
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface(), depth+1)
		}
		return out
	case reflect.Struct:
		return normalizeStruct(rv, depth)
	}

	return fallbackString(v)
}

func normalizeStruct(rv reflect.Value, depth int) map[string]any {
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out[name] = normalize(rv.Field(i).Interface(), depth+1)
	}
	return out
}

func callToSerializable(s ToSerializable) (out any, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	return s.ToSerializable(), true
}

func callFields(f FieldEnumerable) (out map[string]any, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	return f.Fields(), true
}

func fallbackString(v any) string {
	return fmt.Sprintf("%v", v)
}

package introspect

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/felixgeelhaar/docschema/schema"
)

// FromStruct describes the exported fields of a struct type as parameters.
//
// Field names follow the json tag; fields tagged json:"-" are skipped.
// A field has a default when it is a pointer, is tagged omitempty, or
// carries a jsonschema:"default=..." tag.
//
// Kinds come from the declared type, not its underlying kind: a field of
// type Celsius (a float64) has kind "pkg.Celsius" and maps to string, as it
// does when the same signature is read by ParseSource.
func FromStruct(t reflect.Type) ([]schema.Param, error) {
	if t == nil {
		return nil, fmt.Errorf("nil type: %w", ErrNotStruct)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s: %w", t, ErrNotStruct)
	}

	var params []schema.Param
	seen := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := field.Name
		opts := ""
		if jsonTag != "" {
			tagName, rest, _ := strings.Cut(jsonTag, ",")
			if tagName != "" {
				name = tagName
			}
			opts = rest
		}

		if seen[name] {
			return nil, fmt.Errorf("%s: %w", name, ErrDuplicateParam)
		}
		seen[name] = true

		params = append(params, schema.Param{
			Name:       name,
			Kind:       kindOf(field.Type),
			HasDefault: field.Type.Kind() == reflect.Ptr || hasOption(opts, "omitempty") || hasDefaultTag(field.Tag.Get("jsonschema")),
		})
	}
	return params, nil
}

func kindOf(t reflect.Type) schema.Kind {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() != "" {
		return schema.Kind(t.String())
	}

	switch t.Kind() {
	case reflect.String:
		return schema.KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return schema.KindInt
	case reflect.Float32, reflect.Float64:
		return schema.KindFloat
	case reflect.Bool:
		return schema.KindBool
	default:
		return schema.Kind(t.String())
	}
}

func hasOption(opts, want string) bool {
	for _, o := range strings.Split(opts, ",") {
		if strings.TrimSpace(o) == want {
			return true
		}
	}
	return false
}

func hasDefaultTag(tag string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.HasPrefix(strings.TrimSpace(part), "default=") {
			return true
		}
	}
	return false
}

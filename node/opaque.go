package node

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"recurser/category"
)

// Describer is implemented by types that choose which fields the converter
// sees when it expands them, instead of having their struct fields read.
type Describer interface {
	Describe() map[string]any
}

// privateMarker prefixes field names that are never exported by expansion.
const privateMarker = "_"

// field is one named member of an opaque value.
type field struct {
	name  string
	value reflect.Value
}

// reflectOpaque expands an opaque value into its fields, or into its text
// form when it has none.
func (w *walker) reflectOpaque(rv reflect.Value, depth int, path string, asRecord bool) (any, error) {
	fields, ok := describe(rv)
	if !ok {
		return textOf(rv), nil
	}

	leave, err := w.seen.enter(rv, path)
	if err != nil {
		return nil, failAt(path, err)
	}
	defer leave()

	entries := make([]converted, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f.name, privateMarker) || isCallable(f.value) {
			continue
		}

		v, err := w.convert(f.value, depth+1, keyPath(path, f.name))
		if err != nil {
			return nil, err
		}
		entries = append(entries, converted{key: f.name, value: v})
	}

	if asRecord {
		return buildRecord(entries, path)
	}
	return buildMap(entries), nil
}

// describe lists the fields of rv. A Describer is asked directly; a struct
// contributes its exported fields in declaration order. Anything else, and
// structs without exported fields, report false.
func describe(rv reflect.Value) ([]field, bool) {
	if d, ok := category.As[Describer](rv); ok {
		m := d.Describe()

		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		slices.Sort(names)

		fields := make([]field, 0, len(names))
		for _, name := range names {
			fields = append(fields, field{name: name, value: reflect.ValueOf(m[name])})
		}
		return fields, true
	}

	base := category.Indirect(rv)
	if base.Kind() != reflect.Struct {
		return nil, false
	}

	t := base.Type()

	var fields []field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, skip := fieldName(sf)
		if skip {
			continue
		}
		fields = append(fields, field{name: name, value: base.Field(i)})
	}

	return fields, len(fields) > 0
}

// fieldName picks the key of a struct field: the `recurse` tag, then the
// `json` tag, then the Go name. A tag of "-" hides the field.
func fieldName(sf reflect.StructField) (name string, skip bool) {
	for _, key := range []string{"recurse", "json"} {
		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			continue
		}
		if tag == "-" {
			return "", true
		}

		// trim options
		if idx := strings.IndexByte(tag, ','); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag, false
		}
	}

	return sf.Name, false
}

func isCallable(rv reflect.Value) bool {
	base := category.Indirect(rv)
	return base.IsValid() && base.Kind() == reflect.Func
}

// textOf is the terminal case for values without fields: the String method
// when there is one, the default formatting otherwise.
func textOf(rv reflect.Value) string {
	if s, ok := category.As[fmt.Stringer](rv); ok {
		return s.String()
	}
	if !rv.IsValid() || !rv.CanInterface() {
		return "<nil>"
	}
	return fmt.Sprint(rv.Interface())
}

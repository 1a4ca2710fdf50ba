package category

import (
	"bytes"
	"reflect"
)

// Matcher reports whether a dereferenced value belongs to a rule's category.
// Pointers and interfaces are already unwrapped when a Matcher is called;
// the value may still be a nil pointer or the invalid zero Value.
type Matcher func(rv reflect.Value) bool

// Entrier is implemented by ordered keyed containers. The converter treats
// such values as mappings and keeps their key order.
type Entrier interface {
	Keys() []string
	Get(key string) (any, bool)
}

var (
	entrierType = reflect.TypeFor[Entrier]()
	bufferType  = reflect.TypeFor[bytes.Buffer]()
)

// OfKinds matches values whose reflect.Kind is one of kinds.
func OfKinds(kinds ...reflect.Kind) Matcher {
	set := make(map[reflect.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}

	return func(rv reflect.Value) bool {
		if !rv.IsValid() {
			return false
		}

		_, ok := set[rv.Kind()]
		return ok
	}
}

// OfTypes matches values whose dynamic type is exactly one of types.
func OfTypes(types ...reflect.Type) Matcher {
	set := make(map[reflect.Type]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}

	return func(rv reflect.Value) bool {
		if !rv.IsValid() {
			return false
		}

		_, ok := set[rv.Type()]
		return ok
	}
}

// Implements matches non-nil values whose type, or a pointer to it when the
// value is addressable, implements iface.
func Implements(iface reflect.Type) Matcher {
	if iface.Kind() != reflect.Interface {
		panic("category: Implements requires an interface type, got " + iface.String())
	}

	return func(rv reflect.Value) bool {
		if !rv.IsValid() || isNil(rv) {
			return false
		}

		t := rv.Type()
		return t.Implements(iface) || (rv.CanAddr() && reflect.PointerTo(t).Implements(iface))
	}
}

// All matches when every matcher matches.
func All(ms ...Matcher) Matcher {
	return func(rv reflect.Value) bool {
		for _, m := range ms {
			if !m(rv) {
				return false
			}
		}
		return true
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(rv reflect.Value) bool { return !m(rv) }
}

// Anything matches every value. It is the catch-all of the Opaque rule.
func Anything(reflect.Value) bool { return true }

// Nil matches the invalid Value and nil pointers or interfaces.
func Nil(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	default:
		return false
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
}

// ByteSequence matches slices and arrays of bytes, named element types included.
func ByteSequence(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}

	switch rv.Kind() {
	default:
		return false
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() == reflect.Uint8
	}
}

// SetMap matches maps used as sets, i.e. maps whose element type is an empty struct.
func SetMap(rv reflect.Value) bool {
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return false
	}

	elem := rv.Type().Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	default:
		return false
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
}

package node

import (
	"fmt"
	"reflect"
)

// visitKey identifies a container by address. The type is part of the key
// because a struct and its first field share an address; the length is, because
// a slice and its prefix share one.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// tracker remembers the containers on the current path, keyed to the path at
// which they were entered. Siblings may share a container; only a container
// reached again from inside itself is a cycle.
type tracker struct {
	onPath map[visitKey]string
}

// enter records the containers behind rv. The returned func must be called
// when the walk leaves rv.
func (t *tracker) enter(rv reflect.Value, path string) (func(), error) {
	keys := identities(rv)
	if len(keys) == 0 {
		return func() {}, nil
	}

	if t.onPath == nil {
		t.onPath = make(map[visitKey]string)
	}

	for _, k := range keys {
		if first, ok := t.onPath[k]; ok {
			return nil, fmt.Errorf("%w: %s refers back to %s", ErrCyclicValue, path, first)
		}
	}

	added := keys[:0]
	for _, k := range keys {
		if _, ok := t.onPath[k]; ok {
			// the same key twice in one chain
			continue
		}
		t.onPath[k] = path
		added = append(added, k)
	}

	return func() {
		for _, k := range added {
			delete(t.onPath, k)
		}
	}, nil
}

// identities lists every addressable reference between rv and its base value.
func identities(rv reflect.Value) []visitKey {
	var keys []visitKey

	for range maxChain {
		if !rv.IsValid() {
			return keys
		}

		switch rv.Kind() {
		case reflect.Interface:
			if rv.IsNil() {
				return keys
			}
			rv = rv.Elem()
			continue
		case reflect.Pointer:
			if rv.IsNil() {
				return keys
			}
			keys = append(keys, visitKey{ptr: rv.Pointer(), typ: rv.Type()})
			rv = rv.Elem()
			continue
		case reflect.Map:
			if !rv.IsNil() {
				keys = append(keys, visitKey{ptr: rv.Pointer(), typ: rv.Type()})
			}
		case reflect.Slice:
			if rv.Len() > 0 {
				keys = append(keys, visitKey{ptr: rv.Pointer(), typ: rv.Type(), len: rv.Len()})
			}
		}

		return keys
	}

	return keys
}

const maxChain = 64

package node

import (
	"fmt"
	"reflect"

	"recurser/category"
	"recurser/options"
	"recurser/record"
)

// pair is one mapping entry before conversion.
type pair struct {
	key   any
	value reflect.Value
}

// converted is one mapping entry after conversion.
type converted struct {
	key   any
	value any
}

func (w *walker) mapping(rv reflect.Value, depth int, path string) (any, error) {
	leave, err := w.seen.enter(rv, path)
	if err != nil {
		return nil, failAt(path, err)
	}
	defer leave()

	entrier, ordered := category.As[category.Entrier](rv)

	var pairs []pair
	if ordered {
		pairs = entrierPairs(entrier)
	} else {
		pairs = mapPairs(category.Indirect(rv))
	}

	entries := make([]converted, 0, len(pairs))
	for _, p := range pairs {
		key := p.key
		if w.mode == modeFold {
			text, ok := keyText(key)
			if !ok {
				return nil, failAt(path, fmt.Errorf("%w: %T", ErrUnsupportedKey, key))
			}
			key = w.cfg.folder.Fold(text)
		}

		value, err := w.convert(p.value, depth+1, keyPath(path, key))
		if err != nil {
			return nil, err
		}
		entries = append(entries, converted{key: key, value: value})
	}

	if w.wantsRecord(depth, ordered) {
		return buildRecord(entries, path)
	}
	return buildMap(entries), nil
}

// wantsRecord decides the container shape of a mapping at depth.
func (w *walker) wantsRecord(depth int, ordered bool) bool {
	switch w.mode {
	case modeRecord:
		return depth == 0 || w.cfg.Flags.Has(options.FlagNestedRecords)
	case modeFold:
		return ordered
	default:
		return false
	}
}

func entrierPairs(e category.Entrier) []pair {
	keys := e.Keys()
	out := make([]pair, 0, len(keys))
	for _, k := range keys {
		v, _ := e.Get(k)
		out = append(out, pair{key: k, value: reflect.ValueOf(v)})
	}
	return out
}

func mapPairs(m reflect.Value) []pair {
	keys := m.MapKeys()
	sortValues(keys)

	out := make([]pair, 0, len(keys))
	for _, k := range keys {
		out = append(out, pair{key: k.Interface(), value: m.MapIndex(k)})
	}
	return out
}

func buildRecord(entries []converted, path string) (*record.Record, error) {
	rec := &record.Record{}
	for _, e := range entries {
		name, ok := keyText(e.key)
		if !ok {
			return nil, failAt(path, fmt.Errorf("%w: record field %v has type %T", ErrUnsupportedKey, e.key, e.key))
		}
		rec.Set(name, e.value)
	}
	return rec, nil
}

// buildMap returns map[string]any when every key is text, map[any]any otherwise.
func buildMap(entries []converted) any {
	allText := true
	for _, e := range entries {
		if _, ok := keyText(e.key); !ok {
			allText = false
			break
		}
	}

	if allText {
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			name, _ := keyText(e.key)
			out[name] = e.value
		}
		return out
	}

	out := make(map[any]any, len(entries))
	for _, e := range entries {
		out[e.key] = e.value
	}
	return out
}

// keyText returns the text of string-kinded keys, named string types included.
func keyText(key any) (string, bool) {
	rv := reflect.ValueOf(key)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

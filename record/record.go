// Package record provides Record, an ordered set of named values that can be
// read both by key and by dotted field path.
//
// Records are what the converter produces in record mode and what the
// configuration loader hands to callers:
//
//	rec := record.New(map[string]any{
//	    "server": map[string]any{"host": "localhost", "port": 8080},
//	})
//	host, _ := rec.Lookup("server.host")
//	port := record.GetOr(rec, "port", 80)
package record

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Record is an ordered mapping from field names to values.
// The zero value is an empty record ready to use. Read methods accept a nil
// *Record and behave as on an empty one.
type Record struct {
	keys   []string
	values map[string]any
}

// Entry is a single key/value pair of a record.
type Entry struct {
	Key   string
	Value any
}

// New builds a record from m. Keys are ordered lexically. Nested
// map[string]any values become records, and map[string]any elements of
// []any values become records; other values are stored unchanged.
func New(m map[string]any) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	r := &Record{keys: keys, values: make(map[string]any, len(m))}
	for _, k := range keys {
		r.values[k] = lift(m[k])
	}

	return r
}

// FromEntries builds a record holding entries in order. A repeated key keeps
// its first position and its last value.
func FromEntries(entries ...Entry) *Record {
	r := &Record{}
	for _, e := range entries {
		r.Set(e.Key, e.Value)
	}
	return r
}

func lift(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return New(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			if m, ok := elem.(map[string]any); ok {
				out[i] = New(m)
			} else {
				out[i] = elem
			}
		}
		return out
	default:
		return v
	}
}

// Len returns the number of entries.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// GetOr returns the value under key, or def when the key is absent.
func (r *Record) GetOr(key string, def any) any {
	if v, ok := r.Get(key); ok {
		return v
	}
	return def
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}

	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Delete removes key and reports whether it was present.
func (r *Record) Delete(key string) bool {
	if r == nil {
		return false
	}

	if _, ok := r.values[key]; !ok {
		return false
	}

	delete(r.values, key)
	r.keys = slices.DeleteFunc(r.keys, func(k string) bool { return k == key })

	return true
}

// Entries returns the key/value pairs in order.
func (r *Record) Entries() []Entry {
	if r == nil {
		return nil
	}

	out := make([]Entry, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, Entry{Key: k, Value: r.values[k]})
	}
	return out
}

// All iterates over the entries in order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Lookup resolves a dotted path such as "servers.0.host". Segments select
// record fields, map[string]any keys, or []any indexes.
func (r *Record) Lookup(path string) (any, bool) {
	if path == "" {
		return r, r != nil
	}

	var cur any = r
	for _, seg := range strings.Split(path, ".") {
		switch c := cur.(type) {
		case *Record:
			v, ok := c.Get(seg)
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]any:
			v, ok := c[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			cur = c[i]
		default:
			return nil, false
		}
	}

	return cur, true
}

// Traverse walks r depth first. Every entry is yielded with its dotted path
// before the entries of any record it holds, so parents always precede their
// children. A record that already sits on the current path is yielded but
// not descended into again.
func (r *Record) Traverse() iter.Seq2[string, any] {
	type frame struct {
		prefix string
		rec    *Record
		next   int
	}

	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}

		stack := []frame{{rec: r}}
		onStack := map[*Record]bool{r: true}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.rec.keys) {
				delete(onStack, top.rec)
				stack = stack[:len(stack)-1]
				continue
			}

			key := top.rec.keys[top.next]
			top.next++

			value := top.rec.values[key]
			path := key
			if top.prefix != "" {
				path = top.prefix + "." + key
			}

			if !yield(path, value) {
				return
			}

			if child, ok := value.(*Record); ok && child != nil && !onStack[child] {
				onStack[child] = true
				stack = append(stack, frame{prefix: path, rec: child})
			}
		}
	}
}

// ToMap returns a plain map copy of r with nested records, including those
// inside []any values, converted to maps as well.
func (r *Record) ToMap() map[string]any {
	if r == nil {
		return nil
	}

	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = lower(r.values[k])
	}
	return out
}

func lower(v any) any {
	switch v := v.(type) {
	case *Record:
		return v.ToMap()
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = lower(elem)
		}
		return out
	default:
		return v
	}
}

// String formats r as Record(key=value, ...).
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("Record(")
	for i, k := range r.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, r.values[k])
	}
	b.WriteString(")")
	return b.String()
}

// GetOr returns r's value under key when it holds a T, and def otherwise.
func GetOr[T any](r *Record, key string, def T) T {
	if v, ok := r.Get(key); ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	return def
}

package record_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recurser/record"
)

func ExampleRecord_Lookup() {
	rec := record.New(map[string]any{
		"server": map[string]any{"host": "localhost", "port": 8080},
		"bills":  []any{map[string]any{"name": "water"}, "misc"},
	})

	host, ok := rec.Lookup("server.host")
	fmt.Println(host, ok)

	name, ok := rec.Lookup("bills.0.name")
	fmt.Println(name, ok)

	_, ok = rec.Lookup("bills.5")
	fmt.Println(ok)

	fmt.Println(record.GetOr(rec, "timeout", 30))

	// Output:
	// localhost true
	// water true
	// false
	// 30
}

func ExampleRecord_Traverse() {
	rec := record.FromEntries(
		record.Entry{Key: "name", Value: "app"},
		record.Entry{Key: "db", Value: record.FromEntries(
			record.Entry{Key: "host", Value: "db.local"},
			record.Entry{Key: "pool", Value: record.FromEntries(record.Entry{Key: "size", Value: 4})},
		)},
		record.Entry{Key: "debug", Value: false},
	)

	for path, value := range rec.Traverse() {
		if _, ok := value.(*record.Record); ok {
			fmt.Println(path)
			continue
		}
		fmt.Println(path, value)
	}

	// Output:
	// name app
	// db
	// db.host db.local
	// db.pool
	// db.pool.size 4
	// debug false
}

func TestNewLiftsNestedMaps(t *testing.T) {
	t.Parallel()

	rec := record.New(map[string]any{
		"b":    1,
		"a":    map[string]any{"c": 2},
		"list": []any{map[string]any{"d": 3}, 4, []any{map[string]any{"e": 5}}},
	})

	assert.Equal(t, []string{"a", "b", "list"}, rec.Keys())

	a, _ := rec.Get("a")
	assert.IsType(t, &record.Record{}, a)

	list, _ := rec.Get("list")
	items := list.([]any)
	assert.IsType(t, &record.Record{}, items[0])
	assert.Equal(t, 4, items[1])
	assert.IsType(t, []any{}, items[2])
	assert.IsType(t, map[string]any{}, items[2].([]any)[0], "lists inside lists are kept as they are")
}

func TestSetAndDelete(t *testing.T) {
	t.Parallel()

	var rec record.Record
	rec.Set("x", 1)
	rec.Set("y", 2)
	rec.Set("x", 3)

	assert.Equal(t, []string{"x", "y"}, rec.Keys())
	assert.Equal(t, 3, rec.GetOr("x", 0))
	assert.Equal(t, 2, rec.Len())

	assert.True(t, rec.Delete("x"))
	assert.False(t, rec.Delete("x"))
	assert.False(t, rec.Has("x"))
	assert.Equal(t, []record.Entry{{Key: "y", Value: 2}}, rec.Entries())

	rec.Set("x", 4)
	assert.Equal(t, []string{"y", "x"}, rec.Keys())
}

func TestNilRecord(t *testing.T) {
	t.Parallel()

	var rec *record.Record

	assert.Zero(t, rec.Len())
	assert.Nil(t, rec.Keys())
	assert.False(t, rec.Has("a"))
	assert.Equal(t, "d", rec.GetOr("a", "d"))
	assert.Nil(t, rec.ToMap())

	_, ok := rec.Lookup("")
	assert.False(t, ok)

	for range rec.All() {
		t.Fatal("nil record has no entries")
	}
	for range rec.Traverse() {
		t.Fatal("nil record has no entries")
	}
}

func TestAllStopsEarly(t *testing.T) {
	t.Parallel()

	rec := record.FromEntries(
		record.Entry{Key: "a", Value: 1},
		record.Entry{Key: "b", Value: 2},
	)

	var seen []string
	for k := range rec.All() {
		seen = append(seen, k)
		break
	}
	assert.Equal(t, []string{"a"}, seen)
}

func TestTraverseSelfReference(t *testing.T) {
	t.Parallel()

	rec := &record.Record{}
	rec.Set("name", "loop")
	rec.Set("self", rec)

	var paths []string
	for path := range rec.Traverse() {
		paths = append(paths, path)
	}
	assert.Equal(t, []string{"name", "self"}, paths)
}

func TestToMap(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"a":    map[string]any{"b": 1},
		"list": []any{map[string]any{"c": 2}},
	}

	rec := record.New(in)
	assert.Equal(t, in, rec.ToMap())
	assert.Equal(t, "Record(a=Record(b=1), list=[Record(c=2)])", rec.String())
}

func TestGetOr(t *testing.T) {
	t.Parallel()

	rec := record.New(map[string]any{"port": 8080, "host": "h"})

	assert.Equal(t, 8080, record.GetOr(rec, "port", 80))
	assert.Equal(t, 80, record.GetOr(rec, "host", 80), "wrong type falls back")
	assert.Equal(t, "h", record.GetOr(rec, "host", ""))

	v, ok := rec.Lookup("")
	require.True(t, ok)
	assert.Same(t, rec, v)
}

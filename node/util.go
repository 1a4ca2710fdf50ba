package node

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

const rootPath = "$"

func keyPath(path string, key any) string {
	return path + "." + fmt.Sprint(key)
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// sortValues orders map keys so that conversion output does not depend on
// map iteration order. Keys of mixed or unordered kinds sort by their
// formatted text.
func sortValues(vs []reflect.Value) {
	slices.SortStableFunc(vs, compareValues)
}

func compareValues(a, b reflect.Value) int {
	a, b = elem(a), elem(b)

	if a.IsValid() && b.IsValid() && a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Bool:
			return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
		}
	}

	return cmp.Compare(text(a), text(b))
}

func elem(rv reflect.Value) reflect.Value {
	if rv.IsValid() && rv.Kind() == reflect.Interface && !rv.IsNil() {
		return rv.Elem()
	}
	return rv
}

func text(rv reflect.Value) string {
	if !rv.IsValid() || !rv.CanInterface() {
		return ""
	}
	return fmt.Sprintf("%T:%v", rv.Interface(), rv.Interface())
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

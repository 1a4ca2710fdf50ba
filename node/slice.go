package node

import (
	"reflect"

	"recurser/category"
)

// iterable converts slices, arrays and sets into []any. Slices and arrays
// keep their order; sets are listed in sorted key order.
func (w *walker) iterable(rv reflect.Value, depth int, path string) (any, error) {
	leave, err := w.seen.enter(rv, path)
	if err != nil {
		return nil, failAt(path, err)
	}
	defer leave()

	base := category.Indirect(rv)

	var elems []reflect.Value
	if base.Kind() == reflect.Map {
		elems = base.MapKeys()
		sortValues(elems)
	} else {
		elems = make([]reflect.Value, base.Len())
		for i := range elems {
			elems[i] = base.Index(i)
		}
	}

	out := make([]any, 0, len(elems))
	for i, elem := range elems {
		v, err := w.convert(elem, depth+1, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

package node

import (
	"bytes"
	"fmt"
	"reflect"

	"recurser/category"
)

// binary decodes a byte sequence into a string with the configured encoding.
func (w *walker) binary(rv reflect.Value, path string) (any, error) {
	raw := byteContent(rv)

	text, err := w.cfg.TextEncoding().NewDecoder().Bytes(raw)
	if err != nil {
		return nil, failAt(path, fmt.Errorf("%w: %w", ErrDecode, err))
	}

	return string(text), nil
}

func byteContent(rv reflect.Value) []byte {
	if buf, ok := category.As[*bytes.Buffer](rv); ok {
		return buf.Bytes()
	}

	base := category.Indirect(rv)
	switch base.Kind() {
	default:
		return nil
	case reflect.Struct:
		// a bytes.Buffer passed by value is not addressable
		cp := reflect.New(base.Type())
		cp.Elem().Set(base)
		if buf, ok := cp.Interface().(*bytes.Buffer); ok {
			return buf.Bytes()
		}
		return nil
	case reflect.Slice:
		if base.Type().Elem() == reflect.TypeFor[byte]() {
			return base.Bytes()
		}
		fallthrough
	case reflect.Array:
		out := make([]byte, base.Len())
		for i := range out {
			out[i] = byte(base.Index(i).Uint())
		}
		return out
	}
}

// constant returns the value as it was given.
func constant(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// passthrough returns the original value, so pointers keep their identity.
func passthrough(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

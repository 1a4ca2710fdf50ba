package node

import (
	"errors"
	"fmt"

	"recurser/category"
)

var (
	ErrUnclassifiable = category.ErrUnclassifiable
	ErrDepthExceeded  = errors.New("maximum conversion depth exceeded")
	ErrCyclicValue    = errors.New("value refers back to itself")
	ErrUnsupportedKey = errors.New("mapping key is not text")
	ErrDecode         = errors.New("binary value cannot be decoded")
)

// ConvertError reports where in the input tree a conversion failed.
// Path starts at "$" for the root value.
type ConvertError struct {
	Path string
	Err  error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Path, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

func failAt(path string, err error) error {
	var ce *ConvertError
	if errors.As(err, &ce) {
		return err
	}
	return &ConvertError{Path: path, Err: err}
}

// Package category classifies arbitrary Go values into the small set of
// semantic categories the recursive converter dispatches on.
//
// Classification is driven by an ordered list of rules. The order of the
// categories themselves is fixed (Binary, Mapping, Iterable, Constant,
// Opaque) and rules are always evaluated in that order, so adding a rule can
// never change which category wins for a value that more than one rule
// matches.
package category

import "errors"

//go:generate go tool stringer -type=Category -output=category_string.go

type Category int

const (
	_ Category = iota // skip zero value, use it as a default (invalid) value for Category

	CategoryBinary   // byte buffers, byte slices and arrays
	CategoryMapping  // keyed collections
	CategoryIterable // slices, arrays and sets
	CategoryConstant // numbers, strings, booleans and nil
	CategoryOpaque   // anything else

	// CategoryTotal is a constant that represents the total number of categories defined
	CategoryTotal = int(iota)
)

var ErrUnclassifiable = errors.New("value matches no category")

// IsValid reports whether c is one of the defined categories.
func (c Category) IsValid() bool {
	return c > 0 && int(c) < CategoryTotal
}

// IsContainer reports whether values of the category hold other values the
// converter descends into.
func (c Category) IsContainer() bool {
	switch c {
	default:
		return false
	case CategoryMapping, CategoryIterable:
		return true
	}
}

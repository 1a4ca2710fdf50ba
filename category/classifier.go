package category

import (
	"fmt"
	"reflect"
	"slices"
)

// maxIndirections bounds pointer chasing so a pointer that refers to itself
// through an interface cannot loop forever.
const maxIndirections = 64

// Rule assigns Category to every value Match accepts.
type Rule struct {
	Category Category
	Match    Matcher
}

// Classifier maps values to categories using an ordered rule list.
// A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier from rules. Rules are stable-sorted by
// category, so rules of the same category keep their relative order while
// the category precedence stays fixed.
func NewClassifier(rules ...Rule) *Classifier {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)

	for _, r := range sorted {
		if !r.Category.IsValid() {
			panic("category: rule with invalid category " + r.Category.String())
		}
		if r.Match == nil {
			panic("category: rule for " + r.Category.String() + " has nil matcher")
		}
	}

	slices.SortStableFunc(sorted, func(a, b Rule) int { return int(a.Category) - int(b.Category) })

	return &Classifier{rules: sorted}
}

// DefaultRules returns the permissive rule set: every value that is not a
// recognised container or scalar is Opaque.
func DefaultRules() []Rule {
	return append(StrictRules(), Rule{Category: CategoryOpaque, Match: Anything})
}

// StrictRules returns the built-in rules without the Opaque catch-all.
// A classifier built from them reports ErrUnclassifiable for custom types.
func StrictRules() []Rule {
	return []Rule{
		{Category: CategoryBinary, Match: ByteSequence},
		{Category: CategoryBinary, Match: OfTypes(bufferType)},
		{Category: CategoryMapping, Match: Implements(entrierType)},
		{Category: CategoryMapping, Match: All(OfKinds(reflect.Map), Not(SetMap))},
		{Category: CategoryIterable, Match: OfKinds(reflect.Slice, reflect.Array)},
		{Category: CategoryIterable, Match: SetMap},
		{Category: CategoryConstant, Match: Nil},
		{Category: CategoryConstant, Match: OfKinds(
			reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64,
			reflect.Complex64, reflect.Complex128,
			reflect.String,
		)},
	}
}

var (
	defaultClassifier = NewClassifier(DefaultRules()...)
	strictClassifier  = NewClassifier(StrictRules()...)
)

// Default returns the shared permissive classifier.
func Default() *Classifier { return defaultClassifier }

// Strict returns the shared classifier without an Opaque fallback.
func Strict() *Classifier { return strictClassifier }

// With returns a new classifier holding c's rules followed by rules.
func (c *Classifier) With(rules ...Rule) *Classifier {
	return NewClassifier(append(c.Rules(), rules...)...)
}

// Rules returns a copy of the classifier's rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	return slices.Clone(c.rules)
}

// Classify returns the category of v.
func (c *Classifier) Classify(v any) (Category, error) {
	return c.ClassifyValue(reflect.ValueOf(v))
}

// ClassifyValue returns the category of rv after unwrapping pointers and interfaces.
func (c *Classifier) ClassifyValue(rv reflect.Value) (Category, error) {
	base := Indirect(rv)
	for _, r := range c.rules {
		if r.Match(base) {
			return r.Category, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnclassifiable, typeName(base))
}

// Indirect follows pointers and interfaces until it reaches a non-pointer
// value or a nil one.
func Indirect(rv reflect.Value) reflect.Value {
	for range maxIndirections {
		if !rv.IsValid() {
			return rv
		}
		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			return rv
		}
		if rv.IsNil() {
			return rv
		}
		rv = rv.Elem()
	}

	return rv
}

// As returns rv (or the pointer to it, when rv is addressable) as a T,
// looking through pointers and interfaces on the way.
func As[T any](rv reflect.Value) (T, bool) {
	var zero T

	for range maxIndirections {
		if !rv.IsValid() || isNil(rv) {
			return zero, false
		}

		if rv.CanInterface() {
			if t, ok := rv.Interface().(T); ok {
				return t, true
			}
		}

		if rv.CanAddr() && rv.Addr().CanInterface() {
			if t, ok := rv.Addr().Interface().(T); ok {
				return t, true
			}
		}

		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			return zero, false
		}
		rv = rv.Elem()
	}

	return zero, false
}

func typeName(rv reflect.Value) string {
	if !rv.IsValid() {
		return "nil"
	}
	return rv.Type().String()
}

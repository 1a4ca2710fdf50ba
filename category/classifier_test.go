package category_test

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recurser/category"
)

type ordered struct {
	keys []string
}

func (o *ordered) Keys() []string             { return o.keys }
func (o *ordered) Get(key string) (any, bool) { return key, true }

type label string

type opaque struct{ A int }

func ExampleCategory() {
	fmt.Println(category.CategoryBinary, category.CategoryOpaque, category.Category(0))
	fmt.Println(category.CategoryMapping.IsContainer(), category.CategoryConstant.IsContainer())
	fmt.Println(category.Category(0).IsValid(), category.Category(category.CategoryTotal).IsValid())

	// Output:
	// CategoryBinary CategoryOpaque Category(0)
	// true false
	// false false
}

func ExampleClassifier_Classify() {
	c := category.Default()
	for _, v := range []any{[]byte("x"), map[string]int{}, []int{}, 3.5, struct{}{}} {
		cat, err := c.Classify(v)
		fmt.Println(cat, err)
	}

	_, err := category.Strict().Classify(struct{}{})
	fmt.Println(err)

	// Output:
	// CategoryBinary <nil>
	// CategoryMapping <nil>
	// CategoryIterable <nil>
	// CategoryConstant <nil>
	// CategoryOpaque <nil>
	// value matches no category: struct {}
}

func TestDefaultClassifier(t *testing.T) {
	t.Parallel()

	var nilMap map[string]any
	var nilPtr *opaque
	var iface fmt.Stringer

	cases := []struct {
		name  string
		value any
		want  category.Category
	}{
		{"byte slice", []byte("a"), category.CategoryBinary},
		{"byte array", [3]byte{}, category.CategoryBinary},
		{"buffer value", bytes.Buffer{}, category.CategoryBinary},
		{"buffer pointer", new(bytes.Buffer), category.CategoryBinary},
		{"map", map[int]string{}, category.CategoryMapping},
		{"nil map", nilMap, category.CategoryMapping},
		{"entrier", &ordered{}, category.CategoryMapping},
		{"set", map[int]struct{}{}, category.CategoryIterable},
		{"slice", []string{}, category.CategoryIterable},
		{"array", [2]int{}, category.CategoryIterable},
		{"named string", label("x"), category.CategoryConstant},
		{"uint", uint8(1), category.CategoryConstant},
		{"complex", 1 + 2i, category.CategoryConstant},
		{"nil", nil, category.CategoryConstant},
		{"nil pointer", nilPtr, category.CategoryConstant},
		{"nil interface", iface, category.CategoryConstant},
		{"struct", opaque{}, category.CategoryOpaque},
		{"pointer to pointer", func() any { p := &opaque{}; return &p }(), category.CategoryOpaque},
		{"func", func() {}, category.CategoryOpaque},
		{"channel", make(chan int), category.CategoryOpaque},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := category.Default().Classify(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrecedence(t *testing.T) {
	t.Parallel()

	// rules given in reverse still resolve in category order
	c := category.NewClassifier(
		category.Rule{Category: category.CategoryOpaque, Match: category.Anything},
		category.Rule{Category: category.CategoryConstant, Match: category.OfKinds(reflect.Int)},
	)

	got, err := c.Classify(1)
	require.NoError(t, err)
	assert.Equal(t, category.CategoryConstant, got)

	got, err = c.Classify("s")
	require.NoError(t, err)
	assert.Equal(t, category.CategoryOpaque, got)

	rules := c.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, category.CategoryConstant, rules[0].Category)
}

func TestWith(t *testing.T) {
	t.Parallel()

	c := category.Strict().With(category.Rule{
		Category: category.CategoryMapping,
		Match:    category.OfTypes(reflect.TypeFor[opaque]()),
	})

	got, err := c.Classify(opaque{})
	require.NoError(t, err)
	assert.Equal(t, category.CategoryMapping, got)

	_, err = category.Strict().Classify(opaque{})
	require.ErrorIs(t, err, category.ErrUnclassifiable)
}

func TestNewClassifierRejectsBadRules(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		category.NewClassifier(category.Rule{Match: category.Anything})
	})
	assert.Panics(t, func() {
		category.NewClassifier(category.Rule{Category: category.CategoryConstant})
	})
	assert.Panics(t, func() {
		category.Implements(reflect.TypeFor[int]())
	})

	_, err := category.NewClassifier().Classify(1)
	require.ErrorIs(t, err, category.ErrUnclassifiable)
}

func TestAs(t *testing.T) {
	t.Parallel()

	o := &ordered{keys: []string{"k"}}

	e, ok := category.As[category.Entrier](reflect.ValueOf(o))
	require.True(t, ok)
	assert.Equal(t, []string{"k"}, e.Keys())

	var wrapped any = o
	e, ok = category.As[category.Entrier](reflect.ValueOf(&wrapped))
	require.True(t, ok)
	assert.Same(t, o, e)

	_, ok = category.As[category.Entrier](reflect.ValueOf(ordered{}))
	assert.False(t, ok)

	_, ok = category.As[category.Entrier](reflect.Value{})
	assert.False(t, ok)
}

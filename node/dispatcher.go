// Package node converts arbitrary Go values into canonical trees.
//
// Every value is classified (see package category) and handled by category:
// binary values are decoded to strings, mappings and iterables are rebuilt
// with converted contents, constants are returned as they are, and opaque
// values are either expanded into their fields or passed through untouched.
//
// Two output shapes are supported. ToMap produces plain maps
// (map[string]any, or map[any]any when a mapping has non-text keys) and
// []any. ToRecord produces a *record.Record at the root and, when nested
// records are enabled, for nested mappings too. FoldKeys rewrites every
// mapping key with casefold.
//
// Conversion never modifies its input.
package node

import (
	"reflect"

	"golang.org/x/text/encoding"

	"recurser/casefold"
	"recurser/category"
	"recurser/options"
)

// Option configures a Converter.
type Option func(*config)

type config struct {
	options.Options

	classifier *category.Classifier
	folder     casefold.Folder
}

// WithOptions replaces the conversion options wholesale.
func WithOptions(o options.Options) Option {
	return func(c *config) { c.Options = o }
}

// WithExpandOpaque expands opaque values below the root instead of passing them through.
func WithExpandOpaque(expand bool) Option {
	return func(c *config) { c.Flags = c.Flags.With(options.FlagExpandOpaque, expand) }
}

// WithNestedRecords makes ToRecord build records for nested containers as well.
func WithNestedRecords(nested bool) Option {
	return func(c *config) { c.Flags = c.Flags.With(options.FlagNestedRecords, nested) }
}

// WithStrictFold makes FoldKeys fail on opaque values.
func WithStrictFold(strict bool) Option {
	return func(c *config) { c.Flags = c.Flags.With(options.FlagStrictFold, strict) }
}

// WithMaxDepth bounds the nesting depth; zero or less disables the bound.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.MaxDepth = depth }
}

// WithEncoding sets the encoding used to decode binary values.
func WithEncoding(enc encoding.Encoding) Option {
	return func(c *config) { c.Encoding = enc }
}

// WithClassifier replaces the default classifier.
func WithClassifier(cl *category.Classifier) Option {
	if cl == nil {
		panic("classifier cannot be nil")
	}

	return func(c *config) { c.classifier = cl }
}

// WithFolder sets the case folder used by FoldKeys.
func WithFolder(f casefold.Folder) Option {
	return func(c *config) { c.folder = f }
}

// Converter holds a fixed configuration. It is safe for concurrent use.
type Converter struct {
	cfg config
}

// New creates a Converter. Without options it uses options.Default and the
// default classifier.
func New(opts ...Option) *Converter {
	cfg := config{
		Options:    options.Default(),
		classifier: category.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Converter{cfg: cfg}
}

// ToMap converts v into plain maps, slices and scalars.
func ToMap(v any, opts ...Option) (any, error) {
	return New(opts...).Map(v)
}

// ToRecord converts v with records as the container shape.
func ToRecord(v any, opts ...Option) (any, error) {
	return New(opts...).Record(v)
}

// FoldKeys returns a copy of v with every mapping key case folded.
func FoldKeys(v any, opts ...Option) (any, error) {
	return New(opts...).FoldKeys(v)
}

// Map converts v into plain maps, slices and scalars. Opaque values are
// expanded at the root, and below it only with FlagExpandOpaque.
func (c *Converter) Map(v any) (any, error) {
	return c.walk(v, modeMap)
}

// Record converts v like Map, except that a mapping or opaque root becomes a
// *record.Record. Below the root, mappings become records only with
// FlagNestedRecords; opaque values are expanded into records when both
// FlagExpandOpaque and FlagNestedRecords are set and into maps when only
// FlagExpandOpaque is.
func (c *Converter) Record(v any) (any, error) {
	return c.walk(v, modeRecord)
}

// FoldKeys returns a copy of v with every mapping key case folded. Records
// stay records and maps stay maps. Opaque values are returned unchanged
// unless FlagStrictFold is set, in which case they are an error.
func (c *Converter) FoldKeys(v any) (any, error) {
	return c.walk(v, modeFold)
}

// Classify returns the category c assigns to v.
func (c *Converter) Classify(v any) (category.Category, error) {
	return c.cfg.classifier.Classify(v)
}

func (c *Converter) walk(v any, m mode) (any, error) {
	w := &walker{cfg: &c.cfg, mode: m}
	return w.convert(reflect.ValueOf(v), 0, rootPath)
}

// walker carries the state of one conversion.
type walker struct {
	cfg  *config
	mode mode
	seen tracker
}

func (w *walker) convert(rv reflect.Value, depth int, path string) (any, error) {
	if limit := w.cfg.MaxDepth; limit > 0 && depth > limit {
		return nil, failAt(path, ErrDepthExceeded)
	}

	cat, err := w.cfg.classifier.ClassifyValue(rv)
	if err != nil {
		return nil, failAt(path, err)
	}

	switch cat {
	case category.CategoryBinary:
		return w.binary(rv, path)
	case category.CategoryMapping:
		return w.mapping(rv, depth, path)
	case category.CategoryIterable:
		return w.iterable(rv, depth, path)
	case category.CategoryConstant:
		return constant(rv), nil
	case category.CategoryOpaque:
		return w.opaque(rv, depth, path)
	default:
		return nil, failAt(path, ErrUnclassifiable)
	}
}

func (w *walker) opaque(rv reflect.Value, depth int, path string) (any, error) {
	if w.mode == modeFold {
		if w.cfg.Flags.Has(options.FlagStrictFold) {
			return nil, failAt(path, ErrUnclassifiable)
		}
		return passthrough(rv), nil
	}

	action := decideOpaque(w.mode, opaqueKey{
		root:   depth == 0,
		expand: w.cfg.Flags.Has(options.FlagExpandOpaque),
		nested: w.cfg.Flags.Has(options.FlagNestedRecords),
	})

	switch action {
	case opaqueExpandMap:
		return w.reflectOpaque(rv, depth, path, false)
	case opaqueExpandRecord:
		return w.reflectOpaque(rv, depth, path, true)
	default:
		return passthrough(rv), nil
	}
}

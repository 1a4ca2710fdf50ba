// Package appconfig loads YAML (or JSON) configuration files into folded,
// ordered records.
//
// Keys are case folded on load, so a file written with "ListenAddr" is read
// back as "listen_addr". Every mapping in the document becomes a
// *record.Record, in document order.
package appconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"recurser/node"
	"recurser/record"
)

// ErrNotMapping is returned when a configuration document is not a mapping.
var ErrNotMapping = errors.New("configuration root is not a mapping")

// Option configures loading.
type Option func(*loader)

type loader struct {
	defaults *record.Record
	convert  []node.Option
}

// WithDefaults supplies values for top-level keys the document leaves out.
// Default keys are folded like document keys.
func WithDefaults(defaults *record.Record) Option {
	return func(l *loader) { l.defaults = defaults }
}

// WithConverterOptions passes options to the key folding and record conversion.
func WithConverterOptions(opts ...node.Option) Option {
	return func(l *loader) { l.convert = append(l.convert, opts...) }
}

// LoadFile loads and parses a configuration file from the given path.
func LoadFile(path string, opts ...Option) (*record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	rec, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rec, nil
}

// Parse parses YAML data into a folded record. An empty document yields an
// empty record.
func Parse(data []byte, opts ...Option) (*record.Record, error) {
	var l loader
	for _, opt := range opts {
		opt(&l)
	}

	tree, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		tree = &record.Record{}
	}

	rec, err := l.normalize(tree)
	if err != nil {
		return nil, err
	}

	if err := l.applyDefaults(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Decode parses a single YAML document into an ordered tree: mappings become
// records, sequences []any. It returns nil for an empty document.
func Decode(data []byte) (any, error) {
	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if doc.Kind == 0 {
		return nil, nil
	}

	tree, err := record.FromYAMLNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return tree, nil
}

// Marshal serializes a record to YAML.
func Marshal(rec *record.Record) ([]byte, error) {
	return yaml.Marshal(rec)
}

func (l *loader) normalize(tree any) (*record.Record, error) {
	folded, err := node.FoldKeys(tree, l.convert...)
	if err != nil {
		return nil, fmt.Errorf("failed to fold config keys: %w", err)
	}

	out, err := node.ToRecord(folded, append(l.convert, node.WithNestedRecords(true))...)
	if err != nil {
		return nil, fmt.Errorf("failed to build config record: %w", err)
	}

	rec, ok := out.(*record.Record)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, out)
	}

	return rec, nil
}

// applyDefaults fills in top-level keys missing from rec.
func (l *loader) applyDefaults(rec *record.Record) error {
	if l.defaults.Len() == 0 {
		return nil
	}

	defaults, err := l.normalize(l.defaults)
	if err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	for k, v := range defaults.All() {
		if !rec.Has(k) {
			rec.Set(k, v)
		}
	}

	return nil
}

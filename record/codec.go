package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// FromYAMLNode decodes n into plain Go values, turning every mapping into a
// *Record so the document's key order survives. Sequences become []any and
// scalars decode as yaml.v3 decodes them into an interface value. Merge keys
// ("<<") fill in fields the mapping does not set itself.
func FromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return FromYAMLNode(n.Content[0])

	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)

	case yaml.MappingNode:
		return fromYAMLMapping(n)

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := FromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil

	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLMapping(n *yaml.Node) (*Record, error) {
	rec := &Record{}

	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.Tag == mergeTag {
			merges = append(merges, v)
			continue
		}

		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: record keys must be scalars", k.Line)
		}

		value, err := FromYAMLNode(v)
		if err != nil {
			return nil, err
		}
		rec.Set(k.Value, value)
	}

	for _, m := range merges {
		if err := mergeInto(rec, m); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

func mergeInto(rec *Record, n *yaml.Node) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}

	var sources []*yaml.Node
	switch n.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{n}
	case yaml.SequenceNode:
		sources = n.Content
	default:
		return fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", n.Line)
	}

	for _, src := range sources {
		v, err := FromYAMLNode(src)
		if err != nil {
			return err
		}

		other, ok := v.(*Record)
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}

		for key, value := range other.All() {
			if !rec.Has(key) {
				rec.Set(key, value)
			}
		}
	}

	return nil
}

// UnmarshalYAML decodes a YAML mapping into r, keeping document order.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	v, err := FromYAMLNode(value)
	if err != nil {
		return err
	}

	rec, ok := v.(*Record)
	if !ok {
		return fmt.Errorf("line %d: record requires a yaml mapping", value.Line)
	}

	*r = *rec
	return nil
}

// MarshalYAML encodes r as a YAML mapping in entry order.
func (r *Record) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for k, v := range r.All() {
		var valueNode yaml.Node
		if err := valueNode.Encode(v); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}

		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&valueNode,
		)
	}

	return out, nil
}

// MarshalJSON encodes r as a JSON object in entry order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

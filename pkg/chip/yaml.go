package chip

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAML tags for the skipped slot variants.
const (
	TagSkipped           = "!skip"
	TagSkippedWithNumber = "!skip-numbered"
)

// document is the top level of a chip definition file. Keys other than
// "chips" (for example a "presets" block holding YAML anchors) are ignored.
type document struct {
	Chips []Definition `yaml:"chips"`
}

// Decode reads every YAML document from r and returns the chips they define,
// in file order. Each definition is validated.
func Decode(r io.Reader) ([]Definition, error) {
	dec := yaml.NewDecoder(r)

	var defs []Definition
	for {
		var doc document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("chip: decode: %w", err)
		}
		defs = append(defs, doc.Chips...)
	}

	for i := range defs {
		if err := defs[i].Validate(); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

// Encode writes defs as a single YAML document.
func Encode(w io.Writer, defs []Definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Chips: defs}); err != nil {
		return fmt.Errorf("chip: encode: %w", err)
	}
	return enc.Close()
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// UnmarshalYAML decodes the slots one by one. A null item is an error; the
// decoder would otherwise drop it and shift every later pin.
func (s *Slots) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("chip: line %d: pins must be a list", value.Line)
	}

	out := make(Slots, len(value.Content))
	for i, item := range value.Content {
		item = resolveAlias(item)
		if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!null" {
			return fmt.Errorf("chip: line %d: %w (use %s for an empty position)", item.Line, ErrEmptyPinName, TagSkipped)
		}
		if err := out[i].UnmarshalYAML(item); err != nil {
			return err
		}
	}
	*s = out
	return nil
}

// UnmarshalYAML decodes a plain scalar as a named pin and the !skip and
// !skip-numbered tags as skipped slots.
func (s *PinSlot) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("chip: line %d: pin slot must be a scalar", value.Line)
	}

	switch value.Tag {
	case TagSkipped:
		*s = Skipped
	case TagSkippedWithNumber:
		*s = SkippedWithNumber
	default:
		if value.Value == "" {
			return fmt.Errorf("chip: line %d: %w", value.Line, ErrEmptyPinName)
		}
		*s = Pin(value.Value)
	}
	return nil
}

// MarshalYAML is the inverse of UnmarshalYAML.
func (s PinSlot) MarshalYAML() (interface{}, error) {
	switch s.kind {
	case SlotSkipped:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: TagSkipped}, nil
	case SlotSkippedWithNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: TagSkippedWithNumber}, nil
	}
	return s.name, nil
}

// UnmarshalYAML accepts a single name or a list of names.
func (n *Names) UnmarshalYAML(value *yaml.Node) error {
	list, err := scalarList(value)
	if err != nil {
		return err
	}
	*n = list
	return nil
}

// MarshalYAML writes a single name as a scalar.
func (n Names) MarshalYAML() (interface{}, error) {
	if len(n) == 1 {
		return n[0], nil
	}
	return []string(n), nil
}

// UnmarshalYAML decodes a label -> pin(s) mapping, keeping declaration order
// and normalising single pins to one-element lists. Merge keys follow YAML
// rules: explicit labels win over merged ones wherever they appear, and an
// earlier merge source wins over a later one.
func (f *Functions) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("chip: line %d: group pins must be a mapping", value.Line)
	}

	explicit := make(map[string]bool)
	for i := 0; i+1 < len(value.Content); i += 2 {
		if key := value.Content[i]; key.ShortTag() != "!!merge" {
			explicit[key.Value] = true
		}
	}

	var out Functions
	index := make(map[string]int)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]

		if key.ShortTag() == "!!merge" {
			merged, err := mergeSources(val)
			if err != nil {
				return err
			}
			for _, src := range merged {
				var fns Functions
				if err := fns.UnmarshalYAML(src); err != nil {
					return err
				}
				for _, fn := range fns {
					if _, seen := index[fn.Label]; seen || explicit[fn.Label] {
						continue
					}
					index[fn.Label] = len(out)
					out = append(out, fn)
				}
			}
			continue
		}

		pins, err := scalarList(val)
		if err != nil {
			return fmt.Errorf("chip: label %q: %w", key.Value, err)
		}
		fn := Function{Label: key.Value, Pins: pins}
		if i, ok := index[fn.Label]; ok {
			out[i] = fn
			continue
		}
		index[fn.Label] = len(out)
		out = append(out, fn)
	}

	*f = out
	return nil
}

// MarshalYAML writes the functions as an ordered mapping.
func (f Functions) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fn := range f {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fn.Label}

		var val *yaml.Node
		if len(fn.Pins) == 1 {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fn.Pins[0]}
		} else {
			val = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
			for _, p := range fn.Pins {
				val.Content = append(val.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p})
			}
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func mergeSources(val *yaml.Node) ([]*yaml.Node, error) {
	val = resolveAlias(val)
	switch val.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{val}, nil
	case yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(val.Content))
		for _, item := range val.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("chip: line %d: merge source must be a mapping", item.Line)
			}
			out = append(out, item)
		}
		return out, nil
	}
	return nil, fmt.Errorf("chip: line %d: merge source must be a mapping", val.Line)
}

// scalarList normalises "x" and ["x", "y"] to a list of strings.
func scalarList(value *yaml.Node) ([]string, error) {
	value = resolveAlias(value)
	switch value.Kind {
	case yaml.ScalarNode:
		return []string{value.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("chip: line %d: expected a scalar", item.Line)
			}
			out = append(out, item.Value)
		}
		return out, nil
	}
	return nil, fmt.Errorf("chip: line %d: expected a scalar or a list", value.Line)
}

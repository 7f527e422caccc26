package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// RefKind says how a declared property value is resolved at render time.
type RefKind int

const (
	// KindLiteral values are passed through verbatim.
	KindLiteral RefKind = iota
	// KindToken values are bare strings resolved against the setter map,
	// then the state map, then taken literally.
	KindToken
	// KindState values name an entry in the state map.
	KindState
	// KindSetter values name an entry in the setter map.
	KindSetter
)

func (k RefKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindToken:
		return "token"
	case KindState:
		return "state"
	case KindSetter:
		return "setter"
	default:
		return fmt.Sprintf("RefKind(%d)", int(k))
	}
}

// PropValue is a declared component property value.
// Name is set for tokens and references, Value for literals.
type PropValue struct {
	Kind  RefKind
	Name  string
	Value any
}

// Literal declares a value that is never looked up.
func Literal(v any) PropValue { return PropValue{Kind: KindLiteral, Value: v} }

// Token declares a reference token.
func Token(s string) PropValue { return PropValue{Kind: KindToken, Name: s} }

// StateRef declares an explicit state map reference.
func StateRef(name string) PropValue { return PropValue{Kind: KindState, Name: name} }

// SetterRef declares an explicit setter map reference.
func SetterRef(name string) PropValue { return PropValue{Kind: KindSetter, Name: name} }

// Prop is one declared property, kept in declaration order.
type Prop struct {
	Name  string
	Value PropValue
}

// Props is the ordered componentProps mapping of a layer.
type Props []Prop

// Get returns the declared value for name.
func (p Props) Get(name string) (PropValue, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return PropValue{}, false
}

// UnmarshalYAML decodes a mapping node, preserving key order.
func (p *Props) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: componentProps must be a mapping", node.Line)
	}
	out := make(Props, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var v PropValue
		if err := v.UnmarshalYAML(valNode); err != nil {
			return fmt.Errorf("componentProps.%s: %w", keyNode.Value, err)
		}
		out = append(out, Prop{Name: keyNode.Value, Value: v})
	}
	*p = out
	return nil
}

// UnmarshalYAML decodes a single property value.
func (v *PropValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!str" {
			*v = Token(node.Value)
			return nil
		}
	case yaml.MappingNode:
		if len(node.Content) == 2 {
			key, val := node.Content[0].Value, node.Content[1]
			if tagged, ok, err := taggedYAML(key, val); ok || err != nil {
				if err != nil {
					return err
				}
				*v = tagged
				return nil
			}
		}
	case yaml.AliasNode:
		return v.UnmarshalYAML(node.Alias)
	}

	var raw any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = Literal(raw)
	return nil
}

func taggedYAML(key string, val *yaml.Node) (PropValue, bool, error) {
	switch key {
	case "state", "setter":
		if val.Kind != yaml.ScalarNode {
			return PropValue{}, true, fmt.Errorf("line %d: %s reference must be a name", val.Line, key)
		}
		if key == "state" {
			return StateRef(val.Value), true, nil
		}
		return SetterRef(val.Value), true, nil
	case "literal":
		var raw any
		if err := val.Decode(&raw); err != nil {
			return PropValue{}, true, fmt.Errorf("line %d: %w", val.Line, err)
		}
		return Literal(raw), true, nil
	}
	return PropValue{}, false, nil
}

// propsFromTOML converts a decoded componentProps table. order holds the
// names in document order; names it misses are appended sorted.
func propsFromTOML(table map[string]any, order []string) (Props, error) {
	names := make([]string, 0, len(table))
	seen := make(map[string]bool, len(table))
	for _, name := range order {
		if _, ok := table[name]; ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var rest []string
	for name := range table {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	out := make(Props, 0, len(names))
	for _, name := range names {
		v, err := propFromTOML(table[name])
		if err != nil {
			return nil, fmt.Errorf("componentProps.%s: %w", name, err)
		}
		out = append(out, Prop{Name: name, Value: v})
	}
	return out, nil
}

func propFromTOML(raw any) (PropValue, error) {
	switch val := raw.(type) {
	case string:
		return Token(val), nil
	case map[string]any:
		if len(val) != 1 {
			break
		}
		for key, inner := range val {
			switch key {
			case "state", "setter":
				name, ok := inner.(string)
				if !ok {
					return PropValue{}, fmt.Errorf("%s reference must be a name, got %T", key, inner)
				}
				if key == "state" {
					return StateRef(name), nil
				}
				return SetterRef(name), nil
			case "literal":
				return Literal(inner), nil
			}
		}
	}
	return Literal(raw), nil
}

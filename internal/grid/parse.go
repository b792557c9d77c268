package grid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML mapping family -> parameter -> candidate list, keeping key order.
func Parse(raw []byte) (Grid, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Grid{}, fmt.Errorf("parse grid: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Grid{}, fmt.Errorf("parse grid: empty document")
	}
	return FromNode(doc.Content[0])
}

// Load reads a grid file.
func Load(path string) (Grid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Grid{}, fmt.Errorf("read grid %s: %w", path, err)
	}
	return Parse(raw)
}

// FromNode converts a decoded mapping node into a Grid.
func FromNode(node *yaml.Node) (Grid, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return Grid{}, fmt.Errorf("grid: line %d: expected mapping of families", node.Line)
	}

	var g Grid
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, body := node.Content[i].Value, node.Content[i+1]
		family := Family{Name: name}

		if body.Kind == yaml.ScalarNode && body.ShortTag() == "!!null" {
			g.Families = append(g.Families, family)
			continue
		}
		if body.Kind != yaml.MappingNode {
			return Grid{}, fmt.Errorf("grid: family %s: line %d: expected mapping of parameters", name, body.Line)
		}

		for j := 0; j+1 < len(body.Content); j += 2 {
			param, list := body.Content[j].Value, body.Content[j+1]
			values, err := candidates(list)
			if err != nil {
				return Grid{}, fmt.Errorf("grid: family %s: parameter %s: %w", name, param, err)
			}
			family.Params = append(family.Params, Candidates{Name: param, Values: values})
		}
		g.Families = append(g.Families, family)
	}
	return g, nil
}

func candidates(node *yaml.Node) ([]any, error) {
	if node.Kind == yaml.ScalarNode {
		v, err := scalar(node)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected list of values", node.Line)
	}

	values := make([]any, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: values must be scalars", item.Line)
		}
		v, err := scalar(item)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func scalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!int":
		var n int
		if err := node.Decode(&n); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return n, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return f, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return b, nil
	case "!!null":
		return nil, nil
	default:
		return node.Value, nil
	}
}

package export

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/models"
)

const minYAMLIndent = 2

// YAML encodes v as a block-style YAML document, keeping object order.
func YAML(v models.Value, indent int) (string, error) {
	if indent < minYAMLIndent {
		indent = minYAMLIndent
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(yamlNode(v)); err != nil {
		return "", errors.NewFormatError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.NewFormatError("failed to encode YAML", err)
	}
	return trimNewline(buf.String()), nil
}

func yamlNode(v models.Value) *yaml.Node {
	switch v.Kind() {
	case models.BoolKind:
		text := "false"
		if v.AsBool() {
			text = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Value: text}
	case models.NumberKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: string(v.AsNumber())}
	case models.StringKind:
		// !!str makes the encoder quote text that would read back as another type
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.AsString()}
	case models.ArrayKind:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case models.ObjectKind:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.Fields() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
				yamlNode(f.Value),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: "null"}
	}
}

package parser

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/models"
)

// MaxAliasExpansion bounds how many values aliases may copy into a YAML
// document in total.
const MaxAliasExpansion = 1_000_000

// ParseYAML converts the first YAML document in data into a Value. Mapping
// order is kept, aliases are expanded and merge keys (<<) are applied.
func ParseYAML(data []byte) (models.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("YAML syntax error: %v", err),
			errors.ErrInvalidYAML,
		)
	}
	d := &yamlDecoder{anchors: map[*yaml.Node]anchored{}}
	return d.value(&doc, 0)
}

// anchored is the converted value of an anchored node and the number of
// values it contains.
type anchored struct {
	value models.Value
	size  int
}

type yamlDecoder struct {
	anchors map[*yaml.Node]anchored
	// nodes counts every value produced, aliased copies included.
	nodes int
	// expanded counts the values produced through aliases.
	expanded int
}

func (d *yamlDecoder) value(n *yaml.Node, depth int) (models.Value, error) {
	if n.Kind != yaml.AliasNode && n.Anchor != "" {
		if a, ok := d.anchors[n]; ok {
			d.nodes += a.size
			return a.value, nil
		}
		start := d.nodes
		v, err := d.node(n, depth)
		if err != nil {
			return models.Value{}, err
		}
		d.anchors[n] = anchored{value: v, size: d.nodes - start}
		return v, nil
	}
	return d.node(n, depth)
}

func (d *yamlDecoder) alias(n *yaml.Node, depth int) (models.Value, error) {
	start := d.nodes
	v, err := d.value(n.Alias, depth+1)
	if err != nil {
		return models.Value{}, err
	}
	d.expanded += d.nodes - start
	if d.expanded > MaxAliasExpansion {
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("YAML aliases at line %d expand to more than %d values", n.Line, MaxAliasExpansion),
			errors.ErrExcessiveAliasing,
		)
	}
	return v, nil
}

func (d *yamlDecoder) node(n *yaml.Node, depth int) (models.Value, error) {
	if depth > MaxNesting {
		return models.Value{}, nestingError()
	}
	if n.Kind != yaml.DocumentNode && n.Kind != yaml.AliasNode {
		d.nodes++
	}
	switch n.Kind {
	case 0:
		return models.Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return models.Null(), nil
		}
		return d.value(n.Content[0], depth)
	case yaml.AliasNode:
		return d.alias(n, depth)
	case yaml.SequenceNode:
		items := make([]models.Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := d.value(c, depth+1)
			if err != nil {
				return models.Value{}, err
			}
			items = append(items, item)
		}
		return models.Array(items...), nil
	case yaml.MappingNode:
		return d.mapping(n, depth)
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return models.Value{}, errors.NewParsingError(
		fmt.Sprintf("unsupported YAML node at line %d", n.Line),
		errors.ErrInvalidYAML,
	)
}

func (d *yamlDecoder) mapping(n *yaml.Node, depth int) (models.Value, error) {
	var fields, merged []models.Field
	explicit := map[string]bool{}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			m, err := d.merge(v, depth)
			if err != nil {
				return models.Value{}, err
			}
			merged = append(merged, m...)
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return models.Value{}, errors.NewParsingError(
				fmt.Sprintf("mapping key at line %d must be a scalar", k.Line),
				errors.ErrInvalidYAML,
			)
		}
		val, err := d.value(v, depth+1)
		if err != nil {
			return models.Value{}, err
		}
		explicit[k.Value] = true
		fields = append(fields, models.Field{Key: k.Value, Value: val})
	}

	for _, f := range merged {
		if !explicit[f.Key] {
			fields = append(fields, f)
		}
	}
	return models.Object(fields...), nil
}

// merge returns the entries contributed by the value of a << key: a mapping,
// or a sequence of mappings where earlier ones win.
func (d *yamlDecoder) merge(v *yaml.Node, depth int) ([]models.Field, error) {
	var sources []*yaml.Node
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	} else {
		sources = []*yaml.Node{v}
	}

	var out []models.Field
	seen := map[string]bool{}
	for _, src := range sources {
		val, err := d.value(src, depth+1)
		if err != nil {
			return nil, err
		}
		if val.Kind() != models.ObjectKind {
			return nil, errors.NewParsingError(
				fmt.Sprintf("merge value at line %d must be a mapping", src.Line),
				errors.ErrInvalidYAML,
			)
		}
		for _, f := range val.Fields() {
			if !seen[f.Key] {
				seen[f.Key] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

func yamlScalar(n *yaml.Node) (models.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return models.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return models.Value{}, scalarError(n, err)
		}
		return models.Bool(b), nil
	case "!!int":
		if json.Valid([]byte(n.Value)) {
			return models.Number(json.Number(n.Value)), nil
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return models.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return models.Number(json.Number(strconv.FormatUint(u, 10))), nil
		}
		return models.String(n.Value), nil
	case "!!float":
		if json.Valid([]byte(n.Value)) {
			return models.Number(json.Number(n.Value)), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return models.Value{}, scalarError(n, err)
		}
		return models.Float(f), nil
	default:
		return models.String(n.Value), nil
	}
}

func scalarError(n *yaml.Node, err error) error {
	return errors.NewParsingError(
		fmt.Sprintf("invalid %s scalar %q at line %d: %v", n.ShortTag(), n.Value, n.Line, err),
		errors.ErrInvalidYAML,
	)
}

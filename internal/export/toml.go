package export

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/format"
	"github.com/mcncl/jsonfizz/internal/models"
)

// TOML encodes an object value as a TOML document. TOML has no null, so null
// entries are left out; a null inside an array is an error.
func TOML(v models.Value) (string, error) {
	if v.Kind() != models.ObjectKind {
		return "", shapeError(format.TOMLFormat, "an object", v)
	}
	doc, err := tomlValue(v, "")
	if err != nil {
		return "", err
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return "", errors.NewFormatError("failed to encode TOML", err)
	}
	return trimNewline(string(out)), nil
}

func tomlValue(v models.Value, at string) (any, error) {
	switch v.Kind() {
	case models.ArrayKind:
		out := make([]any, 0, v.Len())
		for i, item := range v.Items() {
			if item.IsNull() {
				return nil, errors.NewFormatError(
					fmt.Sprintf("TOML cannot represent null at %s[%d]", at, i),
					errors.ErrUnsupportedShape,
				)
			}
			x, err := tomlValue(item, fmt.Sprintf("%s[%d]", at, i))
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	case models.ObjectKind:
		out := make(map[string]any, v.Len())
		for _, f := range v.Fields() {
			if f.Value.IsNull() {
				continue
			}
			key := f.Key
			if at != "" {
				key = at + "." + f.Key
			}
			x, err := tomlValue(f.Value, key)
			if err != nil {
				return nil, err
			}
			out[f.Key] = x
		}
		return out, nil
	default:
		return v.Interface(), nil
	}
}

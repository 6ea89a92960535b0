// Package export serialises values as YAML, TOML or CSV.
package export

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/format"
	"github.com/mcncl/jsonfizz/internal/models"
)

// Encode serialises v in format f. JSON is rendered by the formatter and is
// rejected here. Output never ends in a newline.
func Encode(v models.Value, f format.Format, indent int) (string, error) {
	switch f {
	case format.YAMLFormat:
		return YAML(v, indent)
	case format.TOMLFormat:
		return TOML(v)
	case format.CSVFormat:
		return CSV(v)
	default:
		return "", errors.NewFormatError(fmt.Sprintf("no exporter for %s", f), errors.ErrUnsupportedFormat)
	}
}

func trimNewline(s string) string {
	return strings.TrimRight(s, "\n")
}

func shapeError(f format.Format, want string, v models.Value) error {
	return errors.NewFormatError(
		fmt.Sprintf("%s output needs %s at the root, got %s", f, want, v.Kind()),
		errors.ErrUnsupportedShape,
	)
}

package parser

import (
	stderrors "errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/models"
)

// ParseTOML converts a TOML document into an object Value. TOML tables are
// decoded through Go maps, so keys come out sorted. Dates and times become
// strings.
func ParseTOML(data []byte) (models.Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		var decodeErr *toml.DecodeError
		if stderrors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return models.Value{}, errors.NewParsingError(
				fmt.Sprintf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error()),
				errors.ErrInvalidTOML,
			)
		}
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("failed to decode TOML: %v", err),
			errors.ErrInvalidTOML,
		)
	}
	v, err := models.FromInterface(doc)
	if err != nil {
		return models.Value{}, errors.NewParsingError("failed to convert TOML document", err)
	}
	return v, nil
}

package parser

import (
	"bytes"
	"encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsonfizz/internal/errors" // Custom errors package
	"github.com/mcncl/jsonfizz/internal/format"
	"github.com/mcncl/jsonfizz/internal/models"
)

// MaxNesting bounds how deeply containers may nest in an input document.
const MaxNesting = 10000

// Parse reads a whole document in format f from reader and converts it into
// a Value.
func Parse(reader io.Reader, f format.Format) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data, f)
}

// ParseBytes parses a document held in memory.
func ParseBytes(data []byte, f format.Format) (models.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Value{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	switch f {
	case format.JSONFormat:
		return ParseJSON(bytes.NewReader(data))
	case format.YAMLFormat:
		return ParseYAML(data)
	case format.TOMLFormat:
		return ParseTOML(data)
	default:
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("cannot read %s documents", f),
			errors.ErrUnsupportedFormat,
		)
	}
}

// ParseString parses a document from a string
func ParseString(input string, f format.Format) (models.Value, error) {
	if strings.TrimSpace(input) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(input), f)
}

// ParseFile parses a document from a file path
func ParseFile(filePath string, f format.Format) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, f)
}

// ParseJSON decodes exactly one JSON value from reader, keeping the order of
// object keys and the literal text of numbers.
func ParseJSON(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	d := jsonDecoder{dec: decoder}
	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
		}
		return models.Value{}, d.wrap(err)
	}
	root, err := d.value(tok, 0)
	if err != nil {
		return models.Value{}, err
	}

	// Anything but whitespace after the root value is an error.
	if _, err := decoder.Token(); err == nil {
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("unexpected data after the root value at offset %d", decoder.InputOffset()),
			errors.ErrMultipleJSON,
		)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, d.wrap(err)
	}
	return root, nil
}

type jsonDecoder struct {
	dec *json.Decoder
}

func (d jsonDecoder) value(tok json.Token, depth int) (models.Value, error) {
	switch t := tok.(type) {
	case nil:
		return models.Null(), nil
	case bool:
		return models.Bool(t), nil
	case json.Number:
		return models.Number(t), nil
	case string:
		return models.String(t), nil
	case json.Delim:
		if depth >= MaxNesting {
			return models.Value{}, nestingError()
		}
		if t == '[' {
			return d.array(depth)
		}
		if t == '{' {
			return d.object(depth)
		}
	}
	return models.Value{}, errors.NewParsingError(
		fmt.Sprintf("unexpected token %v at offset %d", tok, d.dec.InputOffset()),
		errors.ErrInvalidJSON,
	)
}

func (d jsonDecoder) array(depth int) (models.Value, error) {
	items := []models.Value{}
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return models.Value{}, d.wrap(err)
		}
		item, err := d.value(tok, depth+1)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
	if _, err := d.dec.Token(); err != nil {
		return models.Value{}, d.wrap(err)
	}
	return models.Array(items...), nil
}

func (d jsonDecoder) object(depth int) (models.Value, error) {
	fields := []models.Field{}
	for d.dec.More() {
		keyTok, err := d.dec.Token()
		if err != nil {
			return models.Value{}, d.wrap(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Value{}, errors.NewParsingError(
				fmt.Sprintf("object key must be a string at offset %d", d.dec.InputOffset()),
				errors.ErrInvalidJSON,
			)
		}
		tok, err := d.dec.Token()
		if err != nil {
			return models.Value{}, d.wrap(err)
		}
		val, err := d.value(tok, depth+1)
		if err != nil {
			return models.Value{}, err
		}
		fields = append(fields, models.Field{Key: key, Value: val})
	}
	if _, err := d.dec.Token(); err != nil {
		return models.Value{}, d.wrap(err)
	}
	return models.Object(fields...), nil
}

func (d jsonDecoder) wrap(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError(
			fmt.Sprintf("unexpected end of JSON input at offset %d", d.dec.InputOffset()),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

func nestingError() error {
	return errors.NewParsingError(
		fmt.Sprintf("document nests deeper than %d levels", MaxNesting),
		errors.ErrMaxNesting,
	)
}

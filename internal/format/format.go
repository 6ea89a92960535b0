package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a document syntax jsonfizz can read or write.
type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	TOMLFormat
	CSVFormat
)

var ErrBadFormat = errors.New("bad format")

// Parse maps a user supplied name to a Format.
func Parse(v string) (Format, error) {
	f, ok := map[string]Format{
		"json": JSONFormat,
		"yaml": YAMLFormat,
		"yml":  YAMLFormat,
		"toml": TOMLFormat,
		"csv":  CSVFormat,
	}[strings.ToLower(strings.TrimSpace(v))]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q (supported: json, yaml, toml, csv)", ErrBadFormat, v)
}

// Detect guesses the format of a file from its extension, falling back to
// JSON.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAMLFormat
	case ".toml":
		return TOMLFormat
	case ".csv":
		return CSVFormat
	default:
		return JSONFormat
	}
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case TOMLFormat:
		return []byte("toml"), nil
	case CSVFormat:
		return []byte("csv"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := Parse(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// CanRead reports whether documents in this format can be parsed. CSV is
// export-only.
func (f Format) CanRead() bool { return f != CSVFormat }

func (f Format) IsJSON() bool { return f == JSONFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case TOMLFormat:
		return ".toml"
	case CSVFormat:
		return ".csv"
	default:
		return ""
	}
}

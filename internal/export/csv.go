package export

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/format"
	"github.com/mcncl/jsonfizz/internal/models"
)

// CSV writes an array of objects as a table. The header is the sorted union
// of the objects' keys; elements that are not objects are skipped.
func CSV(v models.Value) (string, error) {
	if v.Kind() != models.ArrayKind {
		return "", shapeError(format.CSVFormat, "an array", v)
	}

	var rows []models.Value
	seen := map[string]bool{}
	var header []string
	for _, item := range v.Items() {
		if item.Kind() != models.ObjectKind {
			continue
		}
		rows = append(rows, item)
		for _, k := range item.Keys() {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	if len(rows) == 0 {
		return "", nil
	}
	sort.Strings(header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", errors.NewFormatError("failed to write CSV header", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, k := range header {
			cell, _ := row.Get(k)
			record[i] = csvCell(cell)
		}
		if err := w.Write(record); err != nil {
			return "", errors.NewFormatError("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.NewFormatError("failed to write CSV", err)
	}
	return trimNewline(buf.String()), nil
}

func csvCell(v models.Value) string {
	switch v.Kind() {
	case models.NullKind:
		return ""
	case models.BoolKind:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case models.NumberKind:
		return string(v.AsNumber())
	case models.StringKind:
		return v.AsString()
	default:
		return v.String()
	}
}

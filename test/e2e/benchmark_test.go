package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonfizz/internal/export"
	"github.com/mcncl/jsonfizz/internal/format"
	"github.com/mcncl/jsonfizz/internal/formatter"
	"github.com/mcncl/jsonfizz/internal/parser"
	"github.com/mcncl/jsonfizz/internal/theme"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"timestamp":  time.Now().Format(time.RFC3339),
			"count":      rand.Intn(100),
			"enabled":    rand.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})

	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}

	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})

	for i := 0; i < fieldCount; i++ {
		// Mix different types of fields
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("float_field_%d", i)] = float64(i) + 0.5
		case 4:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]interface{}{
				"id":    i,
				"name":  fmt.Sprintf("Object %d", i),
				"value": i * 10,
			}
		}
	}

	return result
}

func mustMarshal(b *testing.B, v any) []byte {
	b.Helper()
	data, err := json.Marshal(v)
	require.NoError(b, err)
	return data
}

// BenchmarkDeepNesting benchmarks parsing and pretty-printing of deeply
// nested documents
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},   // Moderate nesting
		{"Depth5Width2", 5, 2},   // Deep nesting
		{"Depth2Width10", 2, 10}, // Wide but shallow
	}

	th, err := theme.New("default", false)
	require.NoError(b, err)
	f := formatter.NewFormatter(formatter.Options{Indent: 2}, th)

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			data := mustMarshal(b, generateNestedJSON(depth.depth, depth.width))
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				v, err := parser.ParseBytes(data, format.JSONFormat)
				if err != nil {
					b.Fatal(err)
				}
				if _, err := f.Format(v); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkWideStructures benchmarks objects with many fields, with and
// without key sorting
func BenchmarkWideStructures(b *testing.B) {
	widths := []struct {
		name       string
		fieldCount int
	}{
		{"Fields10", 10},
		{"Fields100", 100},
		{"Fields1000", 1000},
	}

	for _, width := range widths {
		data := mustMarshal(b, generateWideJSON(width.fieldCount))
		v, err := parser.ParseBytes(data, format.JSONFormat)
		require.NoError(b, err)

		for _, sorted := range []bool{false, true} {
			name := fmt.Sprintf("%s/sorted=%t", width.name, sorted)
			f := formatter.NewFormatter(formatter.Options{Indent: 2, SortKeys: sorted}, nil)
			b.Run(name, func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					if _, err := f.Format(v); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkExport benchmarks converting a record list to every output format
func BenchmarkExport(b *testing.B) {
	dir := b.TempDir()
	jsonFile := filepath.Join(dir, "records.json")
	generateLargeJSON(b, jsonFile, 1000)

	v, err := parser.ParseFile(jsonFile, format.JSONFormat)
	require.NoError(b, err)

	for _, f := range []format.Format{format.YAMLFormat, format.CSVFormat} {
		b.Run(f.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := export.Encode(v, f, 2); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkCLI benchmarks the whole binary on a large file
func BenchmarkCLI(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	dir := b.TempDir()
	jsonFile := filepath.Join(dir, "large.json")
	generateLargeJSON(b, jsonFile, 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cmd := command(b, dir, jsonFile)
		if output, err := cmd.CombinedOutput(); err != nil {
			b.Fatalf("CLI command failed: %v\n%s", err, output)
		}
	}
}

package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/fixturegen/internal/config"
	"github.com/mcncl/fixturegen/internal/exporter"
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

// generateLargeJSON writes a compact JSON array with itemCount records to filePath
func generateLargeJSON(t testing.TB, filePath string, itemCount int) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))

	items := make([]map[string]interface{}, itemCount)
	for i := 0; i < itemCount; i++ {
		items[i] = map[string]interface{}{
			"id":          i + 1,
			"guid":        fmt.Sprintf("%x-%x-%x-%x", rng.Uint32(), rng.Uint32()&0xffff, rng.Uint32()&0xffff, rng.Uint32()),
			"name":        fmt.Sprintf("Item %d", i+1),
			"description": fmt.Sprintf("This is item number %d in the test dataset", i+1),
			"price":       rng.Float64() * 1000,
			"quantity":    rng.Intn(100),
			"active":      rng.Intn(2) == 1,
			"tags":        []string{"tag1", "tag2", "tag3"}[0 : rng.Intn(3)+1],
			"metadata": map[string]interface{}{
				"source":      "test",
				"priority":    rng.Intn(5) + 1,
				"score":       rng.Float64(),
				"retry_count": rng.Intn(5),
			},
		}
	}

	jsonData, err := json.Marshal(items)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filePath, jsonData, 0644))
}

// benchmarkExport writes data as the source document and exports it b.N times
func benchmarkExport(b *testing.B, data interface{}) {
	dir := b.TempDir()
	jsonData, err := json.Marshal(data)
	require.NoError(b, err)
	require.NoError(b, os.WriteFile(filepath.Join(dir, config.DefaultInput), jsonData, 0644))

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	exp := exporter.New(dir, config.NewConfig(), logrus.NewEntry(logger))

	b.SetBytes(int64(len(jsonData)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := exp.Export()
		require.NoError(b, err)
	}
}

// BenchmarkDeepNesting benchmarks performance with deeply nested JSON structures
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},
		{"Depth5Width2", 5, 2},
		{"Depth2Width10", 2, 10},
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			benchmarkExport(b, generateNestedJSON(depth.depth, depth.width))
		})
	}
}

// BenchmarkWideStructures benchmarks performance with wide JSON objects
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
		b.Run(width.name, func(b *testing.B) {
			benchmarkExport(b, generateWideJSON(width.fieldCount))
		})
	}
}

// BenchmarkLargeJSON benchmarks performance with large arrays of records
func BenchmarkLargeJSON(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"1000Items", 1000},
		{"10000Items", 10000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			dir := b.TempDir()
			generateLargeJSON(b, filepath.Join(dir, config.DefaultInput), size.itemCount)
			exp := exporter.New(dir, config.NewConfig(), nil)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := exp.Export()
				require.NoError(b, err)
			}
		})
	}
}

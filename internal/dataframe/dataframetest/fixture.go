// Package dataframetest writes small data frame directories for tests.
package dataframetest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/vk/gridsample/internal/dataframe"
	"gopkg.in/yaml.v3"
)

// Column is one column of fixture data. Values must be []int64, []float64,
// []bool or []string.
type Column struct {
	Name   string
	Values any
}

// Int64s is shorthand for an int64 column.
func Int64s(name string, v ...int64) Column { return Column{Name: name, Values: v} }

// Strings is shorthand for a string column.
func Strings(name string, v ...string) Column { return Column{Name: name, Values: v} }

// Float64s is shorthand for a float64 column.
func Float64s(name string, v ...float64) Column { return Column{Name: name, Values: v} }

// WriteParquet writes a Parquet-backed data frame directory with a schema
// file into dir, creating it if needed.
func WriteParquet(t testing.TB, dir string, cols ...Column) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	tbl := buildTable(t, cols)
	defer tbl.Release()

	// WriteTable closes f along with its writer.
	f, err := os.Create(filepath.Join(dir, dataframe.DefaultDataFile))
	require.NoError(t, err)
	require.NoError(t, pqarrow.WriteTable(tbl, f, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()))

	WriteMeta(t, dir, dataframe.Meta{
		Type:   dataframe.DirectoryType,
		Format: dataframe.FormatParquet,
		Data:   dataframe.DefaultDataFile,
		Schema: "schema/_schema.json",
	})
	WriteSchema(t, dir, "schema/_schema.json", cols...)
}

// WriteCSV writes a CSV-backed data frame directory with a schema file.
func WriteCSV(t testing.TB, dir string, cols ...Column) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	var b strings.Builder
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	b.WriteString(strings.Join(names, ",") + "\n")
	for r := 0; r < numRows(cols); r++ {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = cell(c.Values, r)
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte(b.String()), 0o600))

	WriteMeta(t, dir, dataframe.Meta{
		Type:   dataframe.DirectoryType,
		Format: dataframe.FormatCSV,
		Data:   "data.csv",
		Schema: "schema/_schema.json",
	})
	WriteSchema(t, dir, "schema/_schema.json", cols...)
}

// WriteMeta writes _meta.yaml into dir.
func WriteMeta(t testing.TB, dir string, meta dataframe.Meta) {
	t.Helper()
	data, err := yaml.Marshal(meta)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataframe.MetaFile), data, 0o600))
}

// WriteSchema writes the column attributes of cols to dir/rel.
func WriteSchema(t testing.TB, dir, rel string, cols ...Column) {
	t.Helper()
	s := dataframe.Schema{Columns: make([]dataframe.ColumnAttribute, len(cols))}
	for i, c := range cols {
		s.Columns[i] = dataframe.ColumnAttribute{
			Name:        c.Name,
			ElementType: dataframe.ElementType{TypeName: typeName(c.Values), IsNullable: true},
		}
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)

	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func buildTable(t testing.TB, cols []Column) arrow.Table {
	t.Helper()
	mem := memory.DefaultAllocator
	fields := make([]arrow.Field, len(cols))
	arrs := make([]arrow.Array, len(cols))
	for i, c := range cols {
		switch v := c.Values.(type) {
		case []int64:
			b := array.NewInt64Builder(mem)
			b.AppendValues(v, nil)
			arrs[i] = b.NewArray()
			b.Release()
		case []float64:
			b := array.NewFloat64Builder(mem)
			b.AppendValues(v, nil)
			arrs[i] = b.NewArray()
			b.Release()
		case []bool:
			b := array.NewBooleanBuilder(mem)
			b.AppendValues(v, nil)
			arrs[i] = b.NewArray()
			b.Release()
		case []string:
			b := array.NewStringBuilder(mem)
			b.AppendValues(v, nil)
			arrs[i] = b.NewArray()
			b.Release()
		default:
			t.Fatalf("unsupported fixture column type %T", c.Values)
		}
		fields[i] = arrow.Field{Name: c.Name, Type: arrs[i].DataType(), Nullable: true}
	}

	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, arrs, int64(numRows(cols)))
	for _, a := range arrs {
		a.Release()
	}
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec})
}

func numRows(cols []Column) int {
	if len(cols) == 0 {
		return 0
	}
	switch v := cols[0].Values.(type) {
	case []int64:
		return len(v)
	case []float64:
		return len(v)
	case []bool:
		return len(v)
	case []string:
		return len(v)
	}
	return 0
}

func cell(values any, r int) string {
	switch v := values.(type) {
	case []int64:
		return strconv.FormatInt(v[r], 10)
	case []float64:
		return strconv.FormatFloat(v[r], 'g', -1, 64)
	case []bool:
		return strconv.FormatBool(v[r])
	case []string:
		return v[r]
	}
	panic(fmt.Sprintf("unsupported fixture column type %T", values))
}

func typeName(values any) string {
	switch values.(type) {
	case []int64:
		return "int64"
	case []float64:
		return "float64"
	case []bool:
		return "bool"
	default:
		return "str"
	}
}

package dataframe

import (
	"fmt"
	"os"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/goccy/go-json"
)

// Schema is the decoded content of the optional schema file.
type Schema struct {
	Columns []ColumnAttribute `json:"columnAttributes"`
}

// ColumnAttribute describes one column of the data.
type ColumnAttribute struct {
	Name        string      `json:"name"`
	Type        string      `json:"type,omitempty"`
	IsFeature   bool        `json:"isFeature,omitempty"`
	ElementType ElementType `json:"elementType"`
}

// ElementType carries the physical type of a column.
type ElementType struct {
	TypeName   string `json:"typeName"`
	IsNullable bool   `json:"isNullable"`
}

// Names returns the column names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// ArrowSchema maps the column attributes to an Arrow schema. Unknown element
// types are read as strings.
func (s *Schema) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(s.Columns))
	for i, c := range s.Columns {
		fields[i] = arrow.Field{
			Name:     c.Name,
			Type:     arrowType(c.ElementType.TypeName),
			Nullable: true,
		}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(typeName string) arrow.DataType {
	switch strings.ToLower(typeName) {
	case "int", "int8", "int16", "int32", "int64", "integer":
		return arrow.PrimitiveTypes.Int64
	case "float", "float32", "float64", "double", "numeric":
		return arrow.PrimitiveTypes.Float64
	case "bool", "boolean":
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

func readSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode schema %s: %w", path, err)
	}
	return &s, nil
}

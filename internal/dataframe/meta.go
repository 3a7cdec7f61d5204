package dataframe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MetaFile is the name of the descriptor at the root of the directory.
	MetaFile = "_meta.yaml"
	// DirectoryType is the only accepted value of Meta.Type.
	DirectoryType = "DataFrameDirectory"
	// DefaultDataFile is used when Meta.Data is empty.
	DefaultDataFile = "data.dataset.parquet"
)

// Format names the encoding of the data file.
type Format string

const (
	FormatParquet Format = "Parquet"
	FormatCSV     Format = "CSV"
)

// Meta is the decoded content of _meta.yaml.
type Meta struct {
	Type      string         `yaml:"type"`
	Format    Format         `yaml:"format"`
	Data      string         `yaml:"data"`
	Schema    string         `yaml:"schema,omitempty"`
	Samples   string         `yaml:"samples,omitempty"`
	Extension map[string]any `yaml:"extension,omitempty"`
}

// readMeta decodes and normalizes the descriptor of dir.
func readMeta(dir string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetaFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", MetaFile, err)
	}

	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", MetaFile, err)
	}

	if meta.Type != DirectoryType {
		return nil, fmt.Errorf("%w: type is %q", ErrNotDataFrameDirectory, meta.Type)
	}
	switch {
	case meta.Format == "":
		meta.Format = FormatParquet
	case strings.EqualFold(string(meta.Format), string(FormatParquet)):
		meta.Format = FormatParquet
	case strings.EqualFold(string(meta.Format), string(FormatCSV)):
		meta.Format = FormatCSV
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, meta.Format)
	}
	if meta.Data == "" {
		meta.Data = DefaultDataFile
	}
	return &meta, nil
}

package dataframe

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/vk/gridsample/internal/ctxlog"
)

// Directory is a loaded data frame directory. The Table is owned by the
// Directory; call Release when done with it.
type Directory struct {
	Path   string
	Meta   *Meta
	Schema *Schema
	Table  arrow.Table
}

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	mem memory.Allocator
}

// WithAllocator sets the Arrow allocator used for the table's buffers.
func WithAllocator(mem memory.Allocator) Option {
	return func(c *loadConfig) {
		c.mem = mem
	}
}

// Load reads the data frame directory at dir. Filesystem errors are wrapped
// with %w, so errors.Is(err, fs.ErrNotExist) holds for a missing directory.
func Load(ctx context.Context, dir string, opts ...Option) (*Directory, error) {
	cfg := loadConfig{mem: memory.DefaultAllocator}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := ctxlog.FromContext(ctx).With("dir", dir)

	meta, err := readMeta(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load data frame directory %s: %w", dir, err)
	}
	logger.Debug("Read data frame descriptor.", "format", meta.Format, "data", meta.Data, "schema", meta.Schema)

	var schema *Schema
	if meta.Schema != "" {
		schema, err = readSchema(filepath.Join(dir, meta.Schema))
		if err != nil {
			return nil, fmt.Errorf("failed to load data frame directory %s: %w", dir, err)
		}
	}

	dataPath := filepath.Join(dir, meta.Data)
	var tbl arrow.Table
	switch meta.Format {
	case FormatCSV:
		if schema == nil {
			return nil, fmt.Errorf("failed to load data frame directory %s: %w", dir, ErrSchemaRequired)
		}
		tbl, err = readCSV(dataPath, schema, cfg.mem)
	default:
		tbl, err = readParquet(ctx, dataPath, cfg.mem)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load data frame directory %s: %w", dir, err)
	}

	if schema != nil {
		if err := checkColumns(tbl.Schema(), schema); err != nil {
			tbl.Release()
			return nil, fmt.Errorf("failed to load data frame directory %s: %w", dir, err)
		}
	}

	logger.Debug("Loaded data frame.", "rows", tbl.NumRows(), "columns", tbl.NumCols())
	return &Directory{Path: dir, Meta: meta, Schema: schema, Table: tbl}, nil
}

// NumRows returns the number of rows in the table.
func (d *Directory) NumRows() int64 {
	return d.Table.NumRows()
}

// Release frees the table's buffers. It is safe to call more than once.
func (d *Directory) Release() {
	if d.Table != nil {
		d.Table.Release()
		d.Table = nil
	}
}

func checkColumns(got *arrow.Schema, want *Schema) error {
	if got.NumFields() != len(want.Columns) {
		return fmt.Errorf("%w: data has %d columns, schema declares %d", ErrSchemaMismatch, got.NumFields(), len(want.Columns))
	}
	for i, col := range want.Columns {
		if name := got.Field(i).Name; name != col.Name {
			return fmt.Errorf("%w: column %d is %q, schema declares %q", ErrSchemaMismatch, i, name, col.Name)
		}
	}
	return nil
}

package dataframe

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/csv"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// readCSV reads a CSV file with a header row, typing its columns from the
// schema file. The header must name the schema's columns in order. Empty
// cells and "NA" are nulls.
func readCSV(path string, schema *Schema, mem memory.Allocator) (arrow.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := checkHeader(f, schema); err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	sc := schema.ArrowSchema()
	r := csv.NewReader(f, sc,
		csv.WithAllocator(mem),
		csv.WithHeader(true),
		csv.WithNullReader(true, "", "NA"),
	)
	defer r.Release()

	var recs []arrow.Record
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()
	for r.Next() {
		rec := r.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}

	return array.NewTableFromRecords(sc, recs), nil
}

// checkHeader reads the first record of r and compares it with the schema's
// column names.
func checkHeader(r io.Reader, schema *Schema) error {
	header, err := stdcsv.NewReader(r).Read()
	if err == io.EOF {
		return fmt.Errorf("%w: missing header row", ErrSchemaMismatch)
	}
	if err != nil {
		return err
	}
	if want := schema.Names(); !slices.Equal(header, want) {
		return fmt.Errorf("%w: csv header %v, schema declares %v", ErrSchemaMismatch, header, want)
	}
	return nil
}

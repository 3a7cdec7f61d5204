package dataframe

import "errors"

var (
	// ErrNotDataFrameDirectory is returned when _meta.yaml declares a type
	// other than DataFrameDirectory.
	ErrNotDataFrameDirectory = errors.New("not a data frame directory")
	// ErrUnsupportedFormat is returned for data formats other than Parquet and CSV.
	ErrUnsupportedFormat = errors.New("unsupported data frame format")
	// ErrSchemaRequired is returned when a CSV directory has no schema file.
	ErrSchemaRequired = errors.New("csv data frame directory requires a schema")
	// ErrSchemaMismatch is returned when the data columns disagree with the schema file.
	ErrSchemaMismatch = errors.New("data does not match schema")
)

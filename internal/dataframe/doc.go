// Package dataframe loads directory-backed tabular datasets ("data frame
// directories") into Arrow tables and renders short previews of them.
//
// A data frame directory looks like this:
//
//	_meta.yaml               # type, format and relative file names
//	data.dataset.parquet     # the rows, Parquet or CSV
//	schema/_schema.json      # optional column attributes
//
// The package only reads: writing data frame directories is left to the
// producers of the data.
package dataframe

package dataframe

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// NullString is how a null cell is rendered in a Preview.
const NullString = "<NA>"

// floatPrecision caps the decimals shown for float columns.
const floatPrecision = 6

// Preview is a rendered slice of the first rows of a table.
type Preview struct {
	Columns []string
	// Rows holds one string per column for each previewed row.
	Rows [][]string
}

// Head returns the first min(n, rows) rows of the table as strings.
func (d *Directory) Head(n int) Preview {
	schema := d.Table.Schema()
	p := Preview{Columns: make([]string, schema.NumFields())}
	for i := range p.Columns {
		p.Columns[i] = schema.Field(i).Name
	}

	rows := int(d.Table.NumRows())
	if n < rows {
		rows = n
	}
	if rows <= 0 {
		return p
	}

	p.Rows = make([][]string, rows)
	for r := range p.Rows {
		p.Rows[r] = make([]string, len(p.Columns))
	}
	for c := range p.Columns {
		var floats []float64
		var floatRows []int
		r := 0
		for _, chunk := range d.Table.Column(c).Data().Chunks() {
			for j := 0; j < chunk.Len() && r < rows; j++ {
				switch {
				case chunk.IsNull(j):
					p.Rows[r][c] = NullString
				case chunk.DataType().ID() == arrow.FLOAT64:
					floats = append(floats, chunk.(*array.Float64).Value(j))
					floatRows = append(floatRows, r)
				case chunk.DataType().ID() == arrow.FLOAT32:
					floats = append(floats, float64(chunk.(*array.Float32).Value(j)))
					floatRows = append(floatRows, r)
				default:
					p.Rows[r][c] = chunk.ValueStr(j)
				}
				r++
			}
			if r == rows {
				break
			}
		}
		for i, cell := range formatFloats(floats) {
			p.Rows[floatRows[i]][c] = cell
		}
	}
	return p
}

// formatFloats renders a float column with one shared number of decimals:
// enough for the most precise value, at least one, at most floatPrecision.
func formatFloats(values []float64) []string {
	decimals := 1
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s := strings.TrimRight(strconv.FormatFloat(v, 'f', floatPrecision, 64), "0")
		if d := len(s) - strings.IndexByte(s, '.') - 1; d > decimals {
			decimals = d
		}
	}

	out := make([]string, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = "NaN"
		case math.IsInf(v, 1):
			out[i] = "inf"
		case math.IsInf(v, -1):
			out[i] = "-inf"
		default:
			out[i] = strconv.FormatFloat(v, 'f', decimals, 64)
		}
	}
	return out
}

// WriteTo renders the preview as a right-aligned text table with a leading
// row index, in the style of a data frame repr.
func (p Preview) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer

	if len(p.Rows) == 0 {
		fmt.Fprintf(&b, "Empty DataFrame\nColumns: [%s]\nIndex: []\n", strings.Join(p.Columns, ", "))
		return b.WriteTo(w)
	}

	indexWidth := len(strconv.Itoa(len(p.Rows) - 1))
	widths := make([]int, len(p.Columns))
	for c, name := range p.Columns {
		widths[c] = utf8.RuneCountInString(name)
		for _, row := range p.Rows {
			if l := utf8.RuneCountInString(row[c]); l > widths[c] {
				widths[c] = l
			}
		}
	}

	fmt.Fprintf(&b, "%*s", indexWidth, "")
	for c, name := range p.Columns {
		fmt.Fprintf(&b, "  %*s", widths[c], name)
	}
	b.WriteByte('\n')
	for r, row := range p.Rows {
		fmt.Fprintf(&b, "%*d", indexWidth, r)
		for c, cell := range row {
			fmt.Fprintf(&b, "  %*s", widths[c], cell)
		}
		b.WriteByte('\n')
	}
	return b.WriteTo(w)
}

// String implements fmt.Stringer.
func (p Preview) String() string {
	var b strings.Builder
	_, _ = p.WriteTo(&b)
	return b.String()
}

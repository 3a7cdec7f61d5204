package dataframe_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridsample/internal/dataframe"
	"github.com/vk/gridsample/internal/dataframe/dataframetest"
)

func TestHead_BoundsRows(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ids := make([]int64, 25)
	for i := range ids {
		ids[i] = int64(i * 10)
	}
	dir := t.TempDir()
	dataframetest.WriteParquet(t, dir, dataframetest.Int64s("id", ids...))
	dfd, err := dataframe.Load(context.Background(), dir)
	require.NoError(t, err)
	defer dfd.Release()

	testCases := []struct {
		n    int
		want int
	}{
		{n: 10, want: 10},
		{n: 100, want: 25},
		{n: 0, want: 0},
		{n: -1, want: 0},
	}

	for _, tc := range testCases {
		// --- Act ---
		p := dfd.Head(tc.n)

		// --- Assert ---
		require.Len(t, p.Rows, tc.want, "n=%d", tc.n)
		if tc.want > 0 {
			require.Equal(t, "0", p.Rows[0][0])
			require.Equal(t, "90", p.Rows[min(tc.want, 10)-1][0])
		}
	}
}

func TestPreview_WriteTo(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p := dataframe.Preview{
		Columns: []string{"id", "name"},
		Rows: [][]string{
			{"1", "alpha"},
			{"22", dataframe.NullString},
			{"333", "c"},
		},
	}
	want := "" +
		"    id   name\n" +
		"0    1  alpha\n" +
		"1   22   <NA>\n" +
		"2  333      c\n"

	// --- Act ---
	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, int64(len(want)), n)
	require.Equal(t, want, buf.String())
	require.Equal(t, want, p.String())
}

func TestPreview_WriteTo_Empty(t *testing.T) {
	t.Parallel()

	p := dataframe.Preview{Columns: []string{"a", "b"}}

	require.Equal(t, "Empty DataFrame\nColumns: [a, b]\nIndex: []\n", p.String())
}

func TestPreview_IndexWidthGrowsWithRows(t *testing.T) {
	t.Parallel()

	rows := make([][]string, 11)
	for i := range rows {
		rows[i] = []string{"x"}
	}
	p := dataframe.Preview{Columns: []string{"c"}, Rows: rows}

	lines := strings.Split(strings.TrimSuffix(p.String(), "\n"), "\n")
	require.Len(t, lines, 12)
	require.Equal(t, "    c", lines[0])
	require.Equal(t, " 0  x", lines[1])
	require.Equal(t, "10  x", lines[11])
}

func TestHead_FloatColumnsShareDecimals(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		values []float64
		want   []string
	}{
		{name: "widest value sets decimals", values: []float64{1.5, 2.25, 3}, want: []string{"1.50", "2.25", "3.00"}},
		{name: "whole numbers keep one decimal", values: []float64{3, -4}, want: []string{"3.0", "-4.0"}},
		{name: "capped at six decimals", values: []float64{0.1234567, 12.5}, want: []string{"0.123457", "12.500000"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			dir := t.TempDir()
			dataframetest.WriteParquet(t, dir, dataframetest.Float64s("score", tc.values...))
			dfd, err := dataframe.Load(context.Background(), dir)
			require.NoError(t, err)
			defer dfd.Release()

			// --- Act ---
			p := dfd.Head(10)

			// --- Assert ---
			got := make([]string, len(p.Rows))
			for i, row := range p.Rows {
				got[i] = row[0]
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestHead_FloatPreviewLayout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	dataframetest.WriteParquet(t, dir, dataframetest.Float64s("score", 1.5, 2.25, 3))
	dfd, err := dataframe.Load(context.Background(), dir)
	require.NoError(t, err)
	defer dfd.Release()

	// --- Act ---
	got := dfd.Head(10).String()

	// --- Assert ---
	require.Equal(t, "   score\n0   1.50\n1   2.25\n2   3.00\n", got)
}

package hcl_features_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridsample/internal/dataframe/dataframetest"
	"github.com/vk/gridsample/internal/geoinfo"
	"github.com/vk/gridsample/internal/testutil"
	"github.com/vk/gridsample/modules/gdal_sample"
)

func TestGdalSample_CSVDirectoryWithOverriddenDefault(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h := testutil.NewHarness(t)
	dataframetest.WriteCSV(t, h.Path("data"),
		dataframetest.Strings("station", "north", "south"),
		dataframetest.Float64s("elevation", 12.5, 3),
	)
	// input_dir2 becomes optional through a manifest override on disk.
	h.WriteFiles(map[string]string{
		"manifests/gdal_sample.hcl": `
module "gdal_sample" {
  lifecycle {
    on_run = "OnRunGdalSample"
  }
  output "output_dir1" { type = directory }
  output "output_dir2" { type = directory }
  input "input_dir1" { type = directory }
  input "input_dir2" {
    type    = directory
    default = "/srv/shared"
  }
}
`,
	})
	prober := geoinfo.ProberFunc(func(ctx context.Context) (int, error) { return 3080400, nil })

	// --- Act ---
	result := h.Run([]string{
		"-modules-path", h.Path("manifests"),
		"gdal_sample",
		"--output_dir1", h.Path("o1"),
		"--output_dir2", h.Path("o2"),
		"--input_dir1", h.Path("data"),
	}, &gdal_sample.Module{Prober: prober})

	// --- Assert ---
	require.NoError(t, result.Err)
	want := "gdal version number is 3080400.\n" +
		"module definition\n" +
		"input_dir1: " + h.Path("data") + "\n" +
		"input_dir2: /srv/shared\n" +
		"   station  elevation\n" +
		"0    north       12.5\n" +
		"1    south        3.0\n"
	require.Equal(t, want, result.Output)
}

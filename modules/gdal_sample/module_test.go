package gdal_sample

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridsample/internal/console"
	"github.com/vk/gridsample/internal/dataframe/dataframetest"
	"github.com/vk/gridsample/internal/geoinfo"
	"github.com/vk/gridsample/internal/registry"
)

// sandbox lays out two input and two output directories under a resolved
// temp root.
func sandbox(t *testing.T) (root string, input *Input) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	input = &Input{
		OutputDir1: filepath.Join(root, "out1"),
		OutputDir2: filepath.Join(root, "out2"),
		InputDir1:  filepath.Join(root, "in1"),
		InputDir2:  filepath.Join(root, "in2"),
	}
	for _, d := range []string{input.OutputDir1, input.OutputDir2, input.InputDir2} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	return root, input
}

func TestOnRunGdalSample_PrintsPathsAndRows(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, input := sandbox(t)
	dataframetest.WriteParquet(t, input.InputDir1,
		dataframetest.Int64s("id", 1, 2, 3),
		dataframetest.Strings("city", "Oslo", "Lima", "Pune"),
	)
	out := &bytes.Buffer{}
	ctx := console.WithWriter(context.Background(), out)

	// --- Act ---
	_, err := OnRunGdalSample(ctx, &Deps{}, input)

	// --- Assert ---
	require.NoError(t, err)
	want := "module definition\n" +
		"input_dir1: " + input.InputDir1 + "\n" +
		"input_dir2: " + input.InputDir2 + "\n" +
		"   id  city\n" +
		"0   1  Oslo\n" +
		"1   2  Lima\n" +
		"2   3  Pune\n"
	require.Equal(t, want, out.String())
}

func TestOnRunGdalSample_PreviewIsBoundedToTenRows(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, input := sandbox(t)
	vals := make([]int64, 42)
	for i := range vals {
		vals[i] = int64(i)
	}
	dataframetest.WriteParquet(t, input.InputDir1, dataframetest.Int64s("v", vals...))
	out := &bytes.Buffer{}

	// --- Act ---
	_, err := OnRunGdalSample(console.WithWriter(context.Background(), out), &Deps{}, input)

	// --- Assert ---
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	// entry line, two path lines, header, ten rows
	require.Len(t, lines, 3+1+PreviewRows)
	require.Equal(t, "9  9", lines[len(lines)-1])
}

func TestOnRunGdalSample_MissingInputFailsWithoutPreview(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, input := sandbox(t)
	out := &bytes.Buffer{}

	// --- Act ---
	_, err := OnRunGdalSample(console.WithWriter(context.Background(), out), &Deps{}, input)

	// --- Assert ---
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Equal(t, "module definition\n"+
		"input_dir1: "+input.InputDir1+"\n"+
		"input_dir2: "+input.InputDir2+"\n", out.String())
}

func TestOnRunGdalSample_MalformedInputFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, input := sandbox(t)
	require.NoError(t, os.MkdirAll(input.InputDir1, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(input.InputDir1, "_meta.yaml"), []byte("type: [unclosed"), 0o600))
	out := &bytes.Buffer{}

	// --- Act ---
	_, err := OnRunGdalSample(console.WithWriter(context.Background(), out), &Deps{}, input)

	// --- Assert ---
	require.ErrorContains(t, err, "failed to decode _meta.yaml")
	require.Equal(t, 3, strings.Count(out.String(), "\n"), "only the entry and path lines are printed")
}

func TestOnRunGdalSample_LeavesOutputDirsUntouched(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, input := sandbox(t)
	dataframetest.WriteParquet(t, input.InputDir1, dataframetest.Int64s("n", 1))
	marker := filepath.Join(input.OutputDir1, "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("before"), 0o600))
	before1 := snapshot(t, input.OutputDir1)
	before2 := snapshot(t, input.OutputDir2)

	// --- Act ---
	_, err := OnRunGdalSample(console.WithWriter(context.Background(), &bytes.Buffer{}), &Deps{}, input)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, before1, snapshot(t, input.OutputDir1))
	require.Equal(t, before2, snapshot(t, input.OutputDir2))
}

func TestOnRunGdalSample_RelativePathsResolveAgainstWorkingDir(t *testing.T) {
	// --- Arrange ---
	root, input := sandbox(t)
	dataframetest.WriteParquet(t, input.InputDir1, dataframetest.Int64s("n", 1))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	rel := &Input{OutputDir1: "out1", OutputDir2: "out2", InputDir1: "in1", InputDir2: "./in2/../in2"}
	out := &bytes.Buffer{}

	// --- Act ---
	_, err = OnRunGdalSample(console.WithWriter(context.Background(), out), &Deps{}, rel)

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "input_dir1: "+input.InputDir1+"\n")
	require.Contains(t, out.String(), "input_dir2: "+input.InputDir2+"\n")
}

func TestPrepare_PrintsVersionNumber(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := &Module{Prober: geoinfo.ProberFunc(func(ctx context.Context) (int, error) {
		return 3040100, nil
	})}
	out := &bytes.Buffer{}

	// --- Act ---
	err := m.Prepare(context.Background(), out)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "gdal version number is 3040100.\n", out.String())
}

func TestPrepare_ProbeFailure(t *testing.T) {
	t.Parallel()

	probeErr := errors.New("libgdal missing")
	m := &Module{Prober: geoinfo.ProberFunc(func(ctx context.Context) (int, error) {
		return 0, probeErr
	})}
	out := &bytes.Buffer{}

	err := m.Prepare(context.Background(), out)

	require.ErrorIs(t, err, probeErr)
	require.Empty(t, out.String())
}

func TestRegister_ManifestMatchesInput(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Add(&Module{})

	require.Contains(t, reg.HandlerRegistry, "OnRunGdalSample")
	require.Len(t, reg.Manifests(), 1)
	require.Contains(t, string(reg.Manifests()[0].Bytes), `module "gdal_sample"`)
}

func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[path] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

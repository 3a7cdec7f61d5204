// Package geoinfo reports the version of the installed GDAL library.
package geoinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/vk/gridsample/internal/ctxlog"
)

// ErrNotInstalled is returned when no GDAL tool can be found on PATH.
var ErrNotInstalled = errors.New("gdal is not installed")

// Prober reports the installed geospatial library's VERSION_NUM.
type Prober interface {
	VersionNum(ctx context.Context) (int, error)
}

// ProberFunc adapts a plain function to the Prober interface.
type ProberFunc func(ctx context.Context) (int, error)

// VersionNum implements Prober.
func (f ProberFunc) VersionNum(ctx context.Context) (int, error) {
	return f(ctx)
}

// command is one way of asking GDAL for its release string.
type command struct {
	name string
	args []string
}

// GDALProber asks the GDAL command-line tools for their release and encodes
// it the way GDALVersionInfo("VERSION_NUM") does.
type GDALProber struct {
	commands []command
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewGDALProber returns a prober that tries `gdal-config --version` and then
// `gdalinfo --version`.
func NewGDALProber() *GDALProber {
	return &GDALProber{
		commands: []command{
			{name: "gdal-config", args: []string{"--version"}},
			{name: "gdalinfo", args: []string{"--version"}},
		},
		run: runCommand,
	}
}

// VersionNum implements Prober.
func (p *GDALProber) VersionNum(ctx context.Context) (int, error) {
	logger := ctxlog.FromContext(ctx)
	var errs []error
	for _, c := range p.commands {
		out, err := p.run(ctx, c.name, c.args...)
		if err != nil {
			logger.Debug("GDAL version command failed.", "command", c.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		num, err := ParseVersionNum(string(out))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", c.name, err)
		}
		logger.Debug("GDAL version probed.", "command", c.name, "version_num", num)
		return num, nil
	}
	return 0, fmt.Errorf("%w: %w", ErrNotInstalled, errors.Join(errs...))
}

var versionRe = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersionNum extracts the first "X.Y[.Z]" release in s and returns
// X*1000000 + Y*10000 + Z*100. It accepts both "3.4.1" and
// "GDAL 3.4.1, released 2021/12/27".
func ParseVersionNum(s string) (int, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("no version found in %q", s)
	}
	parts := [3]int{}
	for i, g := range m[1:] {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			return 0, fmt.Errorf("invalid version component %q: %w", g, err)
		}
		parts[i] = n
	}
	if parts[1] > 99 || parts[2] > 99 {
		return 0, fmt.Errorf("version %q does not fit VERSION_NUM encoding", m[0])
	}
	num := parts[0]*1000000 + parts[1]*10000 + parts[2]*100
	if num <= 0 {
		return 0, fmt.Errorf("version %q is not positive", m[0])
	}
	return num, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, err
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

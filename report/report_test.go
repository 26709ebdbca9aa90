// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"context"
	"image/png"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rctdprobe/deconv"
	"github.com/katalvlaran/rctdprobe/probe"
	"github.com/katalvlaran/rctdprobe/report"
)

func defaultRun(t *testing.T) *probe.Run {
	t.Helper()
	run, err := probe.Execute(context.Background(), probe.DefaultScenario(), deconv.New(probe.EngineOptions()...))
	require.NoError(t, err)

	return run
}

func TestWriteText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, defaultRun(t)))
	out := buf.String()

	for _, want := range []string{
		"== Weights (full mode) ==",
		"== Hypothesis cell_fraction ==",
		"== Hypothesis rna_proportion ==",
		"== Normalised weights ==",
		"0.1538",
		"0.8462",
		"verdict",
		"rna_proportion",
	} {
		assert.Contains(t, out, want)
	}
	assert.Regexp(t, `typeB total\s+165\n`, out)
	assert.Regexp(t, `spot4 \(3,3\) nUMI\s+585\n`, out)
	assert.Regexp(t, `spot1\s+0\.1538\s+0\.8462\s+\d\.\d{2}e[+-]\d{2}\n`, out)
	assert.NotContains(t, out, "×10")
}

func TestWriteText_NilRun(t *testing.T) {
	t.Parallel()
	require.Error(t, report.WriteText(&bytes.Buffer{}, nil))
	require.Error(t, report.WritePNG(&bytes.Buffer{}, nil))
	require.Error(t, report.WriteHTML(&bytes.Buffer{}, nil))
}

func TestWritePNG(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.WritePNG(&buf, defaultRun(t)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, defaultRun(t)))
	out := buf.String()

	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Normalised weights")
	assert.Contains(t, out, "verdict: rna_proportion")
}

func TestEnvironment(t *testing.T) {
	t.Parallel()
	env := report.Environment()
	assert.Equal(t, runtime.Version(), env.GoVersion)
	assert.Equal(t, runtime.GOOS, env.OS)

	var buf bytes.Buffer
	require.NoError(t, report.WriteEnvironment(&buf))
	assert.Contains(t, buf.String(), "== Environment ==")
	assert.Contains(t, buf.String(), runtime.Version())
}

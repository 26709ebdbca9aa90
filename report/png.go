// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/rctdprobe/probe"
)

// Chart size.
const (
	pngWidth  = 6 * vg.Inch
	pngHeight = 4 * vg.Inch
	barWidth  = vg.Length(14)
)

// WritePNG draws a grouped bar chart: per spot, the fitted weight of the
// second cell type next to each hypothesis value.
func WritePNG(w io.Writer, run *probe.Run) error {
	if run == nil || run.Result == nil {
		return fmt.Errorf("report: nil run")
	}
	spots, series, order, err := typeBSeries(run)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	cols := run.Result.Weights.ColNames()

	p := plot.New()
	p.Title.Text = "Deconvolution weight vs hypotheses"
	p.Y.Label.Text = cols[len(cols)-1] + " share"
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = true

	offset := -vg.Length(len(order)-1) / 2 * barWidth
	for i, name := range order {
		bars, err := plotter.NewBarChart(plotter.Values(series[name]), barWidth)
		if err != nil {
			return fmt.Errorf("report: %s bars: %w", name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = offset + vg.Length(i)*barWidth
		p.Add(bars)
		p.Legend.Add(name, bars)
	}
	p.NominalX(spots...)

	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	_, err = wt.WriteTo(w)

	return err
}

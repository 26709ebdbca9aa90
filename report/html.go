// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/katalvlaran/rctdprobe/probe"
)

type namedTable struct {
	title, subtitle string
	m               *matrix.Labeled
}

// WriteHTML renders one stacked bar chart per table (weights, each
// hypothesis, normalised weights) plus the second-type comparison chart.
func WriteHTML(w io.Writer, run *probe.Run) error {
	if run == nil || run.Result == nil {
		return fmt.Errorf("report: nil run")
	}

	page := components.NewPage()
	page.PageTitle = "rctdprobe"

	tables := []namedTable{{"Weights", string(run.Result.Mode) + " mode, rows not normalised", run.Result.Weights}}
	for _, h := range run.Hypotheses {
		tables = append(tables, namedTable{"Hypothesis", h.Name, h.Table})
	}
	tables = append(tables, namedTable{"Normalised weights", "rows scaled to sum to 1", run.Normalized})

	for _, t := range tables {
		bar, err := stackedBar(t.title, t.subtitle, t.m)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		page.AddCharts(bar)
	}

	spots, series, order, err := typeBSeries(run)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	cmp := newBar("Weight vs hypotheses", "verdict: "+run.Report.Verdict())
	cmp.SetXAxis(spots)
	for _, name := range order {
		cmp.AddSeries(name, barData(series[name]))
	}
	page.AddCharts(cmp)

	return page.Render(w)
}

func newBar(title, subtitle string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
	)

	return bar
}

// stackedBar draws one series per cell type, stacked per spot.
func stackedBar(title, subtitle string, m *matrix.Labeled) (*charts.Bar, error) {
	bar := newBar(title, subtitle)
	bar.SetXAxis(m.RowNames())
	for j, name := range m.ColNames() {
		vals := make([]float64, m.Rows())
		for i := range vals {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		bar.AddSeries(name, barData(vals), charts.WithBarChartOpts(opts.BarChart{Stack: "types"}))
	}

	return bar, nil
}

func barData(vals []float64) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}

	return out
}

// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/katalvlaran/rctdprobe/compare"
	"github.com/katalvlaran/rctdprobe/matrix"
	"github.com/katalvlaran/rctdprobe/probe"
)

// printer formats numbers with English grouping ("1,234").
var printer = message.NewPrinter(language.English)

// WriteText prints, in order: the datasets summary, raw weights, both
// hypotheses, normalised weights, the comparison summary and the verdict.
func WriteText(w io.Writer, run *probe.Run) error {
	if run == nil || run.Result == nil {
		return fmt.Errorf("report: nil run")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	section(tw, "Datasets")
	printer.Fprintf(tw, "%s total\t%d\n", run.A.Name, run.A.Profile.Total())
	printer.Fprintf(tw, "%s total\t%d\n", run.B.Name, run.B.Profile.Total())
	printer.Fprintf(tw, "reference cells\t%d\n", len(run.Reference.Labels))
	for i, id := range run.Spatial.Spots() {
		m := run.Spatial.Mixtures[i]
		printer.Fprintf(tw, "%s (%d,%d) nUMI\t%d\n", id, m.CountA, m.CountB, int64(run.Spatial.NUMI[i]))
	}
	if len(run.Result.Dropped) > 0 {
		printer.Fprintf(tw, "dropped\t%s\n", strings.Join(run.Result.Dropped, ", "))
	}

	section(tw, fmt.Sprintf("Weights (%s mode)", run.Result.Mode))
	if err := table(tw, run.Result.Weights, run.Residuals, "|sum-1|"); err != nil {
		return err
	}
	for _, h := range run.Hypotheses {
		section(tw, "Hypothesis "+h.Name)
		if err := table(tw, h.Table, nil, ""); err != nil {
			return err
		}
	}
	section(tw, "Normalised weights")
	if err := table(tw, run.Normalized, nil, ""); err != nil {
		return err
	}

	section(tw, "Comparison")
	printer.Fprintf(tw, "hypothesis\tmax |diff|\tmatches (tol %.3f)\n", run.Report.Tolerance)
	for _, o := range run.Report.Outcomes {
		printer.Fprintf(tw, "%s\t%.4f\t%t\n", o.Name, o.MaxAbsDiff, o.Matches)
	}
	printer.Fprintf(tw, "\nverdict\t%s\n", run.Report.Verdict())

	return tw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

// table prints a labeled matrix with an optional trailing column.
func table(w io.Writer, m *matrix.Labeled, extra []float64, extraName string) error {
	cols := m.ColNames()
	fmt.Fprintf(w, "spot\t%s", strings.Join(cols, "\t"))
	if extra != nil {
		fmt.Fprintf(w, "\t%s", extraName)
	}
	fmt.Fprintln(w)
	for i, id := range m.RowNames() {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		fmt.Fprint(w, id)
		for _, v := range row {
			printer.Fprintf(w, "\t%.4f", v)
		}
		if extra != nil {
			fmt.Fprintf(w, "\t%.2e", extra[i])
		}
		fmt.Fprintln(w)
	}

	return nil
}

// typeBSeries returns, per spot, the weight and each hypothesis value for
// the second cell type.
func typeBSeries(run *probe.Run) (spots []string, series map[string][]float64, order []string, err error) {
	spots = run.Result.Weights.RowNames()
	series = make(map[string][]float64, 1+len(run.Hypotheses))
	order = append(order, "weight")
	for _, src := range append([]compare.Hypothesis{{Name: "weight", Table: run.Result.Weights}}, run.Hypotheses...) {
		vals := make([]float64, len(spots))
		col := src.Table.Cols() - 1
		for i, id := range spots {
			r, err := src.Table.RowIndex(id)
			if err != nil {
				return nil, nil, nil, err
			}
			if vals[i], err = src.Table.At(r, col); err != nil {
				return nil, nil, nil, err
			}
		}
		series[src.Name] = vals
		if src.Name != "weight" {
			order = append(order, src.Name)
		}
	}

	return spots, series, order, nil
}

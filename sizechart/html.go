// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizechart

import (
	"io"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/csopt/codesize/sizefmt"
)

// HTMLFile is the name RenderHTML output is conventionally saved as.
const HTMLFile = "charts.html"

// RenderHTML writes an interactive page with the bar and line views
// of Render to w.
func RenderHTML(w io.Writer, t *sizefmt.Table, o Options) error {
	page := components.NewPage()
	page.SetPageTitle("Code size analysis")
	page.SetLayout(components.PageFlexLayout)

	for _, g := range ProgramSizes(t) {
		page.AddCharts(barChart(g, "Code size of "+g.Title))
	}
	if g := LevelTrend(t); len(g.Categories) > 0 {
		page.AddCharts(lineChart(g))
	}
	if g := PairSizes(t, o.Pair); len(g.Categories) > 0 {
		page.AddCharts(barChart(g, "Compiler comparison: "+g.Title))
	}
	for _, g := range AdvancedSizes(t) {
		page.AddCharts(barChart(g, strings.ToUpper(g.Title)+": standard vs advanced"))
	}

	if err := page.Render(w); err != nil {
		return errors.Wrap(err, "rendering chart page")
	}
	return nil
}

func globalOpts(title, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithAnimation(false),
	}
}

// value returns nil for NaN so the chart leaves a gap.
func value(x float64) any {
	if math.IsNaN(x) {
		return nil
	}
	return x
}

func barChart(g *Grouped, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title, "bytes")...)
	bar.SetXAxis(g.Categories)
	for _, s := range g.Series {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.BarData{Value: value(v)}
		}
		bar.AddSeries(strings.ToUpper(s.Name), data)
	}
	return bar
}

func lineChart(g *Grouped) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(g.Title, "bytes")...)
	line.SetXAxis(g.Categories)
	for _, s := range g.Series {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: value(v)}
		}
		line.AddSeries(strings.ToUpper(s.Name), data)
	}
	return line
}

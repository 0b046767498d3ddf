// Copyright 2026 The codesize Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sizechart renders code size measurements as PNG charts and
// as an interactive HTML page.
package sizechart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/csopt/codesize/sizefmt"
	"github.com/csopt/codesize/sizestat"
)

// Options controls chart size and content.
type Options struct {
	// WidthCM and HeightCM are the size of a single-panel chart.
	WidthCM, HeightCM float64
	DPI               int

	// Pair selects the compilers of the head-to-head chart.
	Pair sizestat.Pair
	// Baseline is the level reductions are measured against.
	Baseline string
	// Duplicates collapses repeated measurements for the heat maps.
	Duplicates sizestat.DuplicatePolicy
}

// DefaultOptions returns the options used when no settings file is
// given.
func DefaultOptions() Options {
	return Options{
		WidthCM:  24,
		HeightCM: 12,
		DPI:      150,
		Pair:     sizestat.DefaultPair,
		Baseline: sizestat.DefaultBaseline,
	}
}

// Render writes all PNG charts for t into dir, creating it if needed,
// and returns the paths written.
func Render(t *sizefmt.Table, dir string, o Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return nil, errors.WithStack(err)
	}
	r := &renderer{dir: dir, opts: o}

	for _, g := range ProgramSizes(t) {
		pl, err := r.barPlot(g, "Code size of "+g.Title)
		if err != nil {
			return r.files, err
		}
		if err := r.save("code_size_"+fileSafe(g.Title)+".png", 1, pl); err != nil {
			return r.files, err
		}
	}

	if g := LevelTrend(t); len(g.Categories) > 0 {
		pl, err := r.linePlot(g)
		if err != nil {
			return r.files, err
		}
		if err := r.save("optimization_comparison.png", 1, pl); err != nil {
			return r.files, err
		}
	}

	if g := PairSizes(t, o.Pair); len(g.Categories) > 0 {
		pl, err := r.barPlot(g, "Compiler comparison: "+g.Title)
		if err != nil {
			return r.files, err
		}
		if err := r.save("compiler_comparison.png", 1, pl); err != nil {
			return r.files, err
		}
	}

	if gs := AdvancedSizes(t); len(gs) > 0 {
		var panels []*plot.Plot
		for _, g := range gs {
			pl, err := r.advancedPlot(g)
			if err != nil {
				return r.files, err
			}
			panels = append(panels, pl)
		}
		if err := r.save("advanced_optimizations.png", len(panels), panels...); err != nil {
			return r.files, err
		}
	}

	impacts := sizestat.Impacts(t, o.Baseline, o.Duplicates)
	for _, m := range Reductions(t, impacts) {
		if allNaN(flatten(m.Pct)) {
			continue
		}
		pl := r.heatMap(m)
		if err := r.save("size_reduction_heatmap_"+fileSafe(m.Compiler)+".png", 1, pl); err != nil {
			return r.files, err
		}
	}
	return r.files, nil
}

type renderer struct {
	dir   string
	opts  Options
	files []string
}

// colors returns n qualitative colors, cycling if n exceeds the
// palette.
func colors(n int) ([]color.Color, error) {
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set2", 8)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cs := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = xLabel
	pl.Y.Label.Text = yLabel
	pl.X.Tick.Label.Rotation = math.Pi / 4
	pl.X.Tick.Label.XAlign = draw.XRight
	pl.X.Tick.Label.YAlign = draw.YCenter
	pl.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)
	return pl
}

// values converts xs to bar heights. Missing values are drawn as
// empty bars.
func values(xs []float64) plotter.Values {
	vs := make(plotter.Values, len(xs))
	for i, x := range xs {
		if !math.IsNaN(x) {
			vs[i] = x
		}
	}
	return vs
}

func (r *renderer) barPlot(g *Grouped, title string) (*plot.Plot, error) {
	pl := newPlot(title, "Optimization level", "Code size (bytes)")
	cs, err := colors(len(g.Series))
	if err != nil {
		return nil, err
	}

	barWidth := vg.Points(18)
	groupWidth := barWidth * vg.Length(len(g.Series)-1)
	for i, s := range g.Series {
		bc, err := plotter.NewBarChart(values(s.Values), barWidth)
		if err != nil {
			return nil, errors.Wrapf(err, "bar chart %s", s.Name)
		}
		bc.Offset = barWidth*vg.Length(i) - groupWidth/2
		bc.Color = cs[i]
		bc.LineStyle.Width = 0
		pl.Add(bc)
		pl.Legend.Add(strings.ToUpper(s.Name), bc)
	}
	pl.NominalX(g.Categories...)
	return pl, nil
}

func (r *renderer) linePlot(g *Grouped) (*plot.Plot, error) {
	pl := newPlot(g.Title, "Optimization level", "Mean code size (bytes)")
	cs, err := colors(len(g.Series))
	if err != nil {
		return nil, err
	}
	for i, s := range g.Series {
		var xys plotter.XYs
		for j, v := range s.Values {
			if !math.IsNaN(v) {
				xys = append(xys, plotter.XY{X: float64(j), Y: v})
			}
		}
		if len(xys) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "line %s", s.Name)
		}
		line.Color = cs[i]
		line.Width = vg.Points(2)
		points.Color = cs[i]
		points.Shape = draw.CircleGlyph{}
		pl.Add(line, points)
		pl.Legend.Add(strings.ToUpper(s.Name), line, points)
	}
	pl.NominalX(g.Categories...)
	return pl, nil
}

// advancedPlot draws standard and advanced levels of one compiler in
// two colors.
func (r *renderer) advancedPlot(g *Grouped) (*plot.Plot, error) {
	pl := newPlot(strings.ToUpper(g.Title)+": standard vs advanced", "Optimization level", "Mean code size (bytes)")
	cs, err := colors(2)
	if err != nil {
		return nil, err
	}

	vals := g.Series[0].Values
	std := make([]float64, len(vals))
	adv := make([]float64, len(vals))
	for i, l := range g.Categories {
		std[i], adv[i] = math.NaN(), math.NaN()
		if IsStandard(l) {
			std[i] = vals[i]
		} else {
			adv[i] = vals[i]
		}
	}
	for i, part := range []struct {
		name string
		xs   []float64
	}{{"standard", std}, {"advanced", adv}} {
		if allNaN(part.xs) {
			continue
		}
		bc, err := plotter.NewBarChart(values(part.xs), vg.Points(24))
		if err != nil {
			return nil, errors.Wrapf(err, "bar chart %s", part.name)
		}
		bc.Color = cs[i]
		bc.LineStyle.Width = 0
		pl.Add(bc)
		pl.Legend.Add(part.name, bc)
	}
	pl.NominalX(g.Categories...)
	return pl, nil
}

// reductionGrid adapts a Matrix to plotter.GridXYZ with programs as
// rows.
type reductionGrid struct {
	m        *Matrix
	min, max float64
}

func newReductionGrid(m *Matrix) *reductionGrid {
	g := &reductionGrid{m: m, min: math.Inf(1), max: math.Inf(-1)}
	for _, row := range m.Pct {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			g.min = math.Min(g.min, v)
			g.max = math.Max(g.max, v)
		}
	}
	if g.min == g.max {
		g.max = g.min + 1
	}
	return g
}

func (g *reductionGrid) Dims() (c, r int)   { return len(g.m.Levels), len(g.m.Programs) }
func (g *reductionGrid) Z(c, r int) float64 { return g.m.Pct[r][c] }
func (g *reductionGrid) X(c int) float64    { return float64(c) }
func (g *reductionGrid) Y(r int) float64    { return float64(r) }
func (g *reductionGrid) Min() float64       { return g.min }
func (g *reductionGrid) Max() float64       { return g.max }

func nominalTicks(names []string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(names))
	for i, n := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: n}
	}
	return ticks
}

func (r *renderer) heatMap(m *Matrix) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Code size reduction: %s (vs %s)", strings.ToUpper(m.Compiler), r.opts.Baseline)
	pl.X.Label.Text = "Optimization level"
	pl.Y.Label.Text = "Program"
	pl.X.Tick.Marker = nominalTicks(m.Levels)
	pl.Y.Tick.Marker = nominalTicks(m.Programs)

	grid := newReductionGrid(m)
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(grid, reversed(cm.Palette(255)))
	hm.Min, hm.Max = grid.min, grid.max
	hm.NaN = color.Transparent
	pl.Add(hm)

	var labels plotter.XYLabels
	for i := range m.Programs {
		for j := range m.Levels {
			v := m.Pct[i][j]
			if math.IsNaN(v) {
				continue
			}
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(j), Y: float64(i)})
			labels.Labels = append(labels.Labels, fmt.Sprintf("%.1f", v))
		}
	}
	if ls, err := plotter.NewLabels(labels); err == nil {
		for i := range ls.TextStyle {
			ls.TextStyle[i].XAlign = draw.XCenter
			ls.TextStyle[i].YAlign = draw.YCenter
		}
		pl.Add(ls)
	}
	return pl
}

// reversedPalette maps large reductions to blue and growth to red.
type reversedPalette []color.Color

func (p reversedPalette) Colors() []color.Color { return p }

func reversed(p palette.Palette) palette.Palette {
	cs := p.Colors()
	out := make(reversedPalette, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}

// save lays out plots side by side on one canvas and writes it as a
// PNG file. The canvas is cols times as wide as a single chart.
func (r *renderer) save(name string, cols int, plots ...*plot.Plot) error {
	o := r.opts
	width := vg.Length(o.WidthCM*float64(cols)) * vg.Centimeter
	height := vg.Length(o.HeightCM) * vg.Centimeter
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(o.DPI), vgimg.UseBackgroundColor(color.White))
	dc := draw.New(c)

	if len(plots) == 1 {
		plots[0].Draw(dc)
	} else {
		tiles := draw.Tiles{
			Rows: 1, Cols: len(plots),
			PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 2,
			PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
			PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
		}
		canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
		for j, pl := range plots {
			pl.Draw(canvases[0][j])
		}
	}

	path := filepath.Join(r.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.WithStack(err)
	}
	r.files = append(r.files, path)
	return nil
}

// fileSafe replaces path separators so name can be used in a file
// name.
func fileSafe(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(name)
}

func flatten(xss [][]float64) []float64 {
	var out []float64
	for _, xs := range xss {
		out = append(out, xs...)
	}
	return out
}

package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lintang-b-s/pleguide/pkg/lp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var ErrNotPlanar = errors.New("only two variable programs can be plotted")

// BoundaryLine is the line A*x + B*y = RHS.
type BoundaryLine struct {
	Label string
	A     float64
	B     float64
	RHS   float64
}

func (l BoundaryLine) vertical() bool {
	return l.B == 0
}

// Y returns the line's ordinate at x. Vertical lines have none.
func (l BoundaryLine) Y(x float64) float64 {
	if l.vertical() {
		return math.NaN()
	}
	return (l.RHS - l.A*x) / l.B
}

type FeasibleRegion struct {
	Title   string
	XLabel  string
	YLabel  string
	XMin    float64
	XMax    float64
	YMin    float64
	YMax    float64
	Samples int
	Lines   []BoundaryLine
}

// ForProgram draws one boundary line per constraint of a two variable program.
func ForProgram(p *lp.LinearProgram, region FeasibleRegion) (FeasibleRegion, error) {
	if p.NumVars() != 2 {
		return FeasibleRegion{}, fmt.Errorf("%w: %s has %d variables", ErrNotPlanar, p.Name(), p.NumVars())
	}
	region.Lines = region.Lines[:0:0]
	for _, c := range p.Constraints() {
		region.Lines = append(region.Lines, BoundaryLine{
			Label: constraintLabel(c),
			A:     c.Coeffs[0],
			B:     c.Coeffs[1],
			RHS:   c.RHS,
		})
	}
	return region, nil
}

func constraintLabel(c lp.Constraint) string {
	sense := "≤"
	switch c.Sense {
	case lp.GreaterEqual:
		sense = "≥"
	case lp.Equal:
		sense = "="
	}
	return fmt.Sprintf("%s %s %g", term2(c.Coeffs[0], c.Coeffs[1]), sense, c.RHS)
}

func term2(a, b float64) string {
	coef := func(v float64, name string) string {
		if v == 1 {
			return name
		}
		return fmt.Sprintf("%g%s", v, name)
	}
	switch {
	case a == 0:
		return coef(b, "y")
	case b == 0:
		return coef(a, "x")
	case b < 0:
		return fmt.Sprintf("%s - %s", coef(a, "x"), coef(-b, "y"))
	}
	return fmt.Sprintf("%s + %s", coef(a, "x"), coef(b, "y"))
}

// Shade samples the shaded band: from 0 up to max(0, min over lines of y(x)).
// It is an approximation of the region that ignores the sense of each row.
func (r FeasibleRegion) Shade() plotter.XYs {
	n := r.samples()
	top := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		x := r.XMin + (r.XMax-r.XMin)*float64(i)/float64(n-1)
		y := math.Inf(1)
		for _, l := range r.Lines {
			if l.vertical() {
				continue
			}
			y = math.Min(y, l.Y(x))
		}
		if math.IsInf(y, 1) {
			y = 0
		}
		top = append(top, plotter.XY{X: x, Y: math.Max(0, y)})
	}

	poly := make(plotter.XYs, 0, 2*n)
	for _, pt := range top {
		poly = append(poly, plotter.XY{X: pt.X, Y: 0})
	}
	for i := len(top) - 1; i >= 0; i-- {
		poly = append(poly, top[i])
	}
	return poly
}

func (r FeasibleRegion) samples() int {
	if r.Samples < 2 {
		return 400
	}
	return r.Samples
}

func (r FeasibleRegion) linePoints(l BoundaryLine) plotter.XYs {
	if l.vertical() {
		x := l.RHS / l.A
		return plotter.XYs{{X: x, Y: r.YMin}, {X: x, Y: r.YMax}}
	}
	n := r.samples()
	xys := make(plotter.XYs, n)
	for i := range xys {
		x := r.XMin + (r.XMax-r.XMin)*float64(i)/float64(n-1)
		xys[i] = plotter.XY{X: x, Y: l.Y(x)}
	}
	return xys
}

// Render draws the region as an SVG document of the given size in inches.
func Render(r FeasibleRegion, widthInch, heightInch float64) ([]byte, error) {
	if r.XMax <= r.XMin || r.YMax <= r.YMin {
		return nil, fmt.Errorf("chart: empty axis range x=[%g,%g] y=[%g,%g]", r.XMin, r.XMax, r.YMin, r.YMax)
	}

	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = r.XLabel
	p.Y.Label.Text = r.YLabel
	p.Legend.Top = true

	shade, err := plotter.NewPolygon(r.Shade())
	if err != nil {
		return nil, fmt.Errorf("chart: shade: %w", err)
	}
	shade.Color = color.RGBA{R: 128, G: 128, B: 128, A: 77}
	shade.LineStyle.Width = 0
	p.Add(shade)

	for i, l := range r.Lines {
		if l.vertical() && l.A == 0 {
			continue
		}
		line, err := plotter.NewLine(r.linePoints(l))
		if err != nil {
			return nil, fmt.Errorf("chart: line %q: %w", l.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(l.Label, line)
	}

	p.X.Min, p.X.Max = r.XMin, r.XMax
	p.Y.Min, p.Y.Max = r.YMin, r.YMax

	wt, err := p.WriterTo(vg.Length(widthInch)*vg.Inch, vg.Length(heightInch)*vg.Inch, "svg")
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	return buf.Bytes(), nil
}

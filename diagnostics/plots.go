// Package diagnostics renders the two plots the interpretation workflow
// leans on: the scatter of a simple regression with its fitted line, and
// residuals against fitted values.
package diagnostics

import (
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/maduhu/lmfit/pkg/errors"
)

// ScatterWithFit writes a PNG scatter plot of y against x with the fitted
// regression line drawn through it.
func ScatterWithFit(x, y, fitted []float64, title, path string) error {
	if len(x) != len(y) || len(x) != len(fitted) {
		return errors.NewDimensionError("diagnostics.ScatterWithFit", len(x), len(y), 0)
	}
	if len(x) == 0 {
		return errors.NewModelError("diagnostics.ScatterWithFit", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	pts := make(plotter.XYs, len(x))
	line := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
		line[i].X, line[i].Y = x[i], fitted[i]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "lmfit: ScatterWithFit: building scatter")
	}
	p.Add(scatter)

	fit, err := plotter.NewLine(sortedByX(line))
	if err != nil {
		return errors.Wrap(err, "lmfit: ScatterWithFit: building fit line")
	}
	p.Add(fit)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "lmfit: ScatterWithFit: saving plot")
	}
	return nil
}

// ResidualsVsFitted writes a PNG of residuals against fitted values with a
// zero reference line, the first check for structure left in the residuals.
func ResidualsVsFitted(fitted, residuals []float64, title, path string) error {
	if len(fitted) != len(residuals) {
		return errors.NewDimensionError("diagnostics.ResidualsVsFitted", len(fitted), len(residuals), 0)
	}
	if len(fitted) == 0 {
		return errors.NewModelError("diagnostics.ResidualsVsFitted", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "fitted"
	p.Y.Label.Text = "residual"

	pts := make(plotter.XYs, len(fitted))
	minX, maxX := fitted[0], fitted[0]
	for i := range fitted {
		pts[i].X, pts[i].Y = fitted[i], residuals[i]
		if fitted[i] < minX {
			minX = fitted[i]
		}
		if fitted[i] > maxX {
			maxX = fitted[i]
		}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "lmfit: ResidualsVsFitted: building scatter")
	}
	p.Add(scatter)

	zero, err := plotter.NewLine(plotter.XYs{{X: minX, Y: 0}, {X: maxX, Y: 0}})
	if err != nil {
		return errors.Wrap(err, "lmfit: ResidualsVsFitted: building reference line")
	}
	p.Add(zero)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "lmfit: ResidualsVsFitted: saving plot")
	}
	return nil
}

func sortedByX(pts plotter.XYs) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	copy(out, pts)
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package factor

import (
	"fmt"

	"github.com/js-arias/blind"
	"github.com/js-arias/phylocomp/phylofactor"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// plotFactors draws the balance of each factor
// against the covariate.
func plotFactors(res *phylofactor.Result, prefix string) error {
	x := res.Covariate()
	for i, f := range res.Factors() {
		p, err := factorPlot(i+1, f, x)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s-%d.png", prefix, i+1)
		if err := p.Save(5*vg.Inch, 4*vg.Inch, name); err != nil {
			return fmt.Errorf("while saving %q: %v", name, err)
		}
	}
	return nil
}

func factorPlot(n int, f phylofactor.Factor, x []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("factor %d: edge %d (%d vs %d terms)", n, f.Edge, len(f.Group), len(f.Complement))
	p.X.Label.Text = "disturbance"
	p.Y.Label.Text = "balance"

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = f.Balance[i]
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("factor %d: %v", n, err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Color = blind.Sequential(blind.Iridescent, 0.8)
	p.Add(sc)

	line := plotter.NewFunction(f.Fit.Predict)
	line.Color = blind.Sequential(blind.Iridescent, 0.2)
	line.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}

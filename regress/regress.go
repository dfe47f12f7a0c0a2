// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package regress implements a simple linear regression
// of a response on a single covariate,
// with an F-test of the slope.
package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Linear is a fitted linear model
// y = Alpha + Beta*x.
type Linear struct {
	Alpha float64
	Beta  float64

	// Sum of squares:
	// total, explained, and residual.
	TSS float64
	ESS float64
	RSS float64

	// Coefficient of determination.
	R2 float64

	// F statistic of the slope,
	// with 1 and DF degrees of freedom.
	F      float64
	DF     int
	PValue float64
}

// Fit fits a linear model
// of y on the covariate x.
func Fit(y, x []float64) (Linear, error) {
	if len(y) != len(x) {
		return Linear{}, fmt.Errorf("regress: %d responses, %d covariates", len(y), len(x))
	}
	if len(y) < 3 {
		return Linear{}, fmt.Errorf("regress: not enough observations: %d", len(y))
	}
	if floats.Min(x) == floats.Max(x) {
		return Linear{}, fmt.Errorf("regress: constant covariate")
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	mean := stat.Mean(y, nil)

	var tss, rss float64
	for i, v := range y {
		d := v - mean
		tss += d * d
		r := v - (alpha + beta*x[i])
		rss += r * r
	}
	ess := math.Max(tss-rss, 0)

	l := Linear{
		Alpha: alpha,
		Beta:  beta,
		TSS:   tss,
		ESS:   ess,
		RSS:   rss,
		DF:    len(y) - 2,
	}
	if tss > 0 {
		l.R2 = ess / tss
	}

	switch {
	case rss == 0 && ess == 0:
		l.F = 0
		l.PValue = 1
	case rss == 0:
		l.F = math.Inf(1)
		l.PValue = 0
	default:
		l.F = ess / (rss / float64(l.DF))
		f := distuv.F{
			D1: 1,
			D2: float64(l.DF),
		}
		l.PValue = 1 - f.CDF(l.F)
	}
	return l, nil
}

// Predict returns the predicted response
// for a covariate value.
func (l Linear) Predict(x float64) float64 {
	return l.Alpha + l.Beta*x
}

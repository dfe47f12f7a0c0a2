// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package regress_test

import (
	"math"
	"testing"

	"github.com/js-arias/phylocomp/regress"
)

func TestFit(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1}

	l, err := regress.Fit(y, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// values from the normal equations
	want := regress.Linear{
		Alpha: 0.05,
		Beta:  1.99,
		TSS:   39.708,
		RSS:   0.107,
		DF:    3,
	}
	if math.Abs(l.Alpha-want.Alpha) > 1e-9 {
		t.Errorf("alpha: got %.6f, want %.6f", l.Alpha, want.Alpha)
	}
	if math.Abs(l.Beta-want.Beta) > 1e-9 {
		t.Errorf("beta: got %.6f, want %.6f", l.Beta, want.Beta)
	}
	if math.Abs(l.TSS-want.TSS) > 1e-9 {
		t.Errorf("TSS: got %.6f, want %.6f", l.TSS, want.TSS)
	}
	if math.Abs(l.RSS-want.RSS) > 1e-9 {
		t.Errorf("RSS: got %.6f, want %.6f", l.RSS, want.RSS)
	}
	if math.Abs(l.ESS+l.RSS-l.TSS) > 1e-9 {
		t.Errorf("ESS + RSS: got %.6f, want %.6f", l.ESS+l.RSS, l.TSS)
	}
	if l.DF != want.DF {
		t.Errorf("DF: got %d, want %d", l.DF, want.DF)
	}
	if f := l.ESS / (l.RSS / 3); math.Abs(l.F-f) > 1e-9 {
		t.Errorf("F: got %.6f, want %.6f", l.F, f)
	}
	if l.PValue <= 0 || l.PValue > 0.001 {
		t.Errorf("p-value: got %.6g, want a small positive value", l.PValue)
	}
	if g := l.Predict(6); math.Abs(g-11.99) > 1e-9 {
		t.Errorf("predict: got %.6f, want %.6f", g, 11.99)
	}
}

func TestFitNoSlope(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{1, -1, -1, 1}

	l, err := regress.Fit(y, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(l.Beta) > 1e-12 {
		t.Errorf("beta: got %.6f, want %.6f", l.Beta, 0.0)
	}
	if l.R2 > 1e-12 {
		t.Errorf("R2: got %.6f, want %.6f", l.R2, 0.0)
	}
	if math.Abs(l.PValue-1) > 1e-9 {
		t.Errorf("p-value: got %.6f, want %.6f", l.PValue, 1.0)
	}
}

func TestFitErrors(t *testing.T) {
	if _, err := regress.Fit([]float64{1, 2}, []float64{1, 2}); err == nil {
		t.Errorf("two observations: expecting error")
	}
	if _, err := regress.Fit([]float64{1, 2, 3}, []float64{1, 2}); err == nil {
		t.Errorf("length mismatch: expecting error")
	}
	if _, err := regress.Fit([]float64{1, 2, 3}, []float64{4, 4, 4}); err == nil {
		t.Errorf("constant covariate: expecting error")
	}
}

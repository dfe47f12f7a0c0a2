// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package factor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/js-arias/phylocomp/phylofactor"
	"github.com/js-arias/phylocomp/regress"
)

func TestFactorPlot(t *testing.T) {
	x := []float64{-1, 0, 1, 2}
	bal := []float64{-2.1, 0.1, 1.9, 4.2}
	fit, err := regress.Fit(bal, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := phylofactor.Factor{
		Edge:       3,
		Group:      []string{"A", "B"},
		Complement: []string{"C"},
		Balance:    bal,
		Fit:        fit,
	}

	p, err := factorPlot(1, f, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name := filepath.Join(t.TempDir(), "factor-1.png")
	if err := p.Save(200, 150, name); err != nil {
		t.Fatalf("unable to save plot: %v", err)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("plot file: %v", err)
	}
}

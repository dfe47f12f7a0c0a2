// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package param_test

import (
	"path/filepath"
	"testing"

	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/param"
	"github.com/js-arias/phylocomp/philr"
	"github.com/js-arias/phylocomp/phylofactor"
)

func TestParam(t *testing.T) {
	name := filepath.Join(t.TempDir(), "params.tab")
	ap := param.New(name)
	testAP(t, ap, nil, name)

	ap.SetMuTotal(5000)
	ap.SetDispersion(2.5)
	ap.SetScale(1.5)
	ap.SetPseudocount(0.5)
	ap.SetFactors(7)
	ap.Set(param.PartWeights, "gm.counts")
	ap.Set(param.ILRWeights, "mean.descendants")
	ap.Set(param.Choice, "F")

	if err := ap.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := param.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testAP(t, np, ap, name)

	if np.PartWeight() != philr.GMCounts {
		t.Errorf("part weights: got %q, want %q", np.PartWeight(), philr.GMCounts)
	}
	if np.Choice() != phylofactor.FStat {
		t.Errorf("choice: got %q, want %q", np.Choice(), phylofactor.FStat)
	}
}

func TestDefaults(t *testing.T) {
	ap := param.New("params.tab")
	if ap.Abundance() != abundance.DefaultParam() {
		t.Errorf("abundance: got %v, want %v", ap.Abundance(), abundance.DefaultParam())
	}
	if ap.Pseudocount() != abundance.DefPseudocount {
		t.Errorf("pseudocount: got %v, want %v", ap.Pseudocount(), abundance.DefPseudocount)
	}
}

func TestInvalid(t *testing.T) {
	ap := param.New("params.tab")
	tests := []struct {
		p param.Param
		v string
	}{
		{param.MuTotal, "-1"},
		{param.Dispersion, "0"},
		{param.Pseudocount, "0"},
		{param.Pseudocount, "NaN"},
		{param.Factors, "0"},
		{param.PartWeights, "counts"},
		{param.ILRWeights, "length"},
		{param.Choice, "deviance"},
		{param.Param("steps"), "1"},
	}
	for _, test := range tests {
		if err := ap.Set(test.p, test.v); err == nil {
			t.Errorf("parameter %q, value %q: expecting error", test.p, test.v)
		}
	}
}

func testAP(t testing.TB, ap, want *param.AP, name string) {
	t.Helper()

	if want == nil {
		want = param.New(name)
	}
	if ap.Name() != want.Name() {
		t.Errorf("name: got %q, want %q", ap.Name(), want.Name())
	}
	for _, p := range param.Params() {
		if g, w := ap.Value(p), want.Value(p); g != w {
			t.Errorf("parameter %q: got %q, want %q", p, g, w)
		}
	}
}

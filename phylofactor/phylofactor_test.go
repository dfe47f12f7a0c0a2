// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofactor_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/phylofactor"
	"github.com/js-arias/timetree"
)

var treeBlob = `# test tree
tree	node	parent	age	taxon
test	0	-1	10000000	
test	1	0	6000000	
test	2	1	0	A
test	3	1	0	B
test	4	0	4000000	
test	5	4	0	C
test	6	4	2000000	
test	7	6	0	D
test	8	6	0	E
`

func readTree(t testing.TB) *phylo.Tree {
	t.Helper()

	c, err := timetree.ReadTSV(strings.NewReader(treeBlob))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	return phylo.New(c.Tree("test"))
}

// newTable returns a table in which
// the clade D+E increases with the covariate.
func newTable(t testing.TB) (*abundance.Table, []float64) {
	t.Helper()

	species := []string{"A", "B", "C", "D", "E"}
	var samples []string
	var x []float64
	for j := 0; j < 20; j++ {
		samples = append(samples, fmt.Sprintf("s%d", j+1))
		x = append(x, -2+float64(j)*0.2)
	}
	tab, err := abundance.NewTable(species, samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, sp := range species {
		for j, s := range samples {
			noise := 0.1 * math.Sin(float64(7*i+3*j))
			v := math.Log(100) + noise
			if sp == "D" || sp == "E" {
				v += 2 * x[j]
			}
			tab.Set(sp, s, math.Exp(v))
		}
	}
	return tab, x
}

func TestFactorize(t *testing.T) {
	pt := readTree(t)
	tab, x := newTable(t)

	r, err := phylofactor.Factorize(tab, pt, x, phylofactor.Param{Factors: 2, Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs := r.Factors()
	if len(fs) != 2 {
		t.Fatalf("factors: got %d, want %d", len(fs), 2)
	}

	f := fs[0]
	if want := []string{"D", "E"}; !reflect.DeepEqual(f.Group, want) {
		t.Errorf("first factor group: got %v, want %v", f.Group, want)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(f.Complement, want) {
		t.Errorf("first factor complement: got %v, want %v", f.Complement, want)
	}
	if want := math.Sqrt(6.0/5.0) * 2; math.Abs(f.Fit.Beta-want) > 0.1 {
		t.Errorf("first factor slope: got %.6f, want %.6f", f.Fit.Beta, want)
	}
	if f.Fit.PValue > 1e-6 {
		t.Errorf("first factor p-value: got %.6g, want < 1e-6", f.Fit.PValue)
	}
	if f.ExpVar < 0.9 || f.ExpVar > 1 {
		t.Errorf("first factor explained variance: got %.6f, want in [0.9, 1]", f.ExpVar)
	}

	if g := len(r.Bins()); g != 3 {
		t.Errorf("bins: got %d, want %d", g, 3)
	}

	var w bytes.Buffer
	if err := r.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV: %v", err)
	}
	if err := r.BalanceTSV(&w); err != nil {
		t.Fatalf("unable to write TSV: %v", err)
	}
}

func TestFactorizeAll(t *testing.T) {
	pt := readTree(t)
	tab, x := newTable(t)

	for _, c := range []phylofactor.Choice{phylofactor.Var, phylofactor.FStat} {
		r, err := phylofactor.Factorize(tab, pt, x, phylofactor.Param{Factors: 10, Choice: c})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c, err)
		}

		// a tree with 5 terminals has only 4 independent balances
		fs := r.Factors()
		if len(fs) != 4 {
			t.Errorf("%s: factors: got %d, want %d", c, len(fs), 4)
		}
		bins := r.Bins()
		if len(bins) != 5 {
			t.Errorf("%s: bins: got %d, want %d", c, len(bins), 5)
		}
		for _, b := range bins {
			if len(b) != 1 {
				t.Errorf("%s: bin %v: want a single terminal", c, b)
			}
		}

		var sum float64
		for _, f := range fs {
			sum += f.ExpVar
		}
		if sum > 1+1e-9 {
			t.Errorf("%s: explained variance: got %.6f, want <= 1", c, sum)
		}
	}
}

func TestWorkers(t *testing.T) {
	pt := readTree(t)
	tab, x := newTable(t)

	one, err := phylofactor.Factorize(tab, pt, x, phylofactor.Param{Factors: 3, Workers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	many, err := phylofactor.Factorize(tab, pt, x, phylofactor.Param{Factors: 3, Workers: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(one.Factors(), many.Factors()) {
		t.Errorf("results should not depend on the number of workers")
	}
}

func TestBalance(t *testing.T) {
	logs := map[string][]float64{
		"A": {math.Log(4)},
		"B": {math.Log(1)},
		"C": {math.Log(2)},
	}
	b := phylofactor.Balance(logs, []string{"A"}, []string{"B", "C"}, 1)
	want := math.Sqrt(2.0/3.0) * (math.Log(4) - math.Log(2)/2)
	if math.Abs(b[0]-want) > 1e-12 {
		t.Errorf("balance: got %.6f, want %.6f", b[0], want)
	}
}

func TestFactorizeErrors(t *testing.T) {
	pt := readTree(t)
	tab, x := newTable(t)

	if _, err := phylofactor.Factorize(tab, pt, x, phylofactor.Param{Factors: 0}); err == nil {
		t.Errorf("zero factors: expecting error")
	}
	if _, err := phylofactor.Factorize(tab, pt, x[:3], phylofactor.Param{Factors: 1}); !errors.Is(err, abundance.ErrInvalidInput) {
		t.Errorf("covariate mismatch: got error %v, want %v", err, abundance.ErrInvalidInput)
	}
	if _, err := phylofactor.ParseChoice("deviance"); err == nil {
		t.Errorf("unknown choice: expecting error")
	}

	tab.Set("C", "s3", 0)
	if _, err := phylofactor.Factorize(tab, pt, x, phylofactor.Param{Factors: 1}); !errors.Is(err, abundance.ErrInvalidInput) {
		t.Errorf("zero count: got error %v, want %v", err, abundance.ErrInvalidInput)
	}
}

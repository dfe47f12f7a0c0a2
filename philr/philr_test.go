// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package philr_test

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/philr"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/timetree"
	"gonum.org/v1/gonum/floats"
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

var polytomyBlob = `tree	node	parent	age	taxon
poly	0	-1	10000000	
poly	1	0	0	A
poly	2	0	0	B
poly	3	0	0	C
`

func readTree(t testing.TB, blob, name string) *phylo.Tree {
	t.Helper()

	c, err := timetree.ReadTSV(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	return phylo.New(c.Tree(name))
}

// composition of a sample
var comp = map[string]float64{
	"A": 12,
	"B": 3,
	"C": 40,
	"D": 0.65,
	"E": 7,
}

func tipValues(tips []string, v map[string]float64) []float64 {
	x := make([]float64, len(tips))
	for i, tx := range tips {
		x[i] = v[tx]
	}
	return x
}

func TestBasisOrthonormal(t *testing.T) {
	pt := readTree(t, treeBlob, "test")
	tips := pt.Tips()

	for _, p := range [][]float64{nil, {1, 2, 0.5, 3, 1.5}} {
		b, err := philr.NewBasis(pt, p, philr.ILRUniform)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		w := p
		if w == nil {
			w = []float64{1, 1, 1, 1, 1}
		}

		psi := b.Contrast()
		r, c := psi.Dims()
		if r != len(tips) || c != len(tips)-1 {
			t.Fatalf("contrast dims: got %d x %d, want %d x %d", r, c, len(tips), len(tips)-1)
		}
		for k := 0; k < c; k++ {
			var sum float64
			for i := 0; i < r; i++ {
				sum += w[i] * psi.At(i, k)
			}
			if math.Abs(sum) > 1e-12 {
				t.Errorf("weights %v: balance %d: weighted sum: got %.6g, want 0", p, k, sum)
			}
			for l := 0; l < c; l++ {
				var dot float64
				for i := 0; i < r; i++ {
					dot += w[i] * psi.At(i, k) * psi.At(i, l)
				}
				want := 0.0
				if k == l {
					want = 1
				}
				if math.Abs(dot-want) > 1e-12 {
					t.Errorf("weights %v: balances %d, %d: got %.6f, want %.6f", p, k, l, dot, want)
				}
			}
		}
	}
}

func TestBalanceValues(t *testing.T) {
	pt := readTree(t, treeBlob, "test")
	b, err := philr.NewBasis(pt, nil, philr.ILRUniform)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	y, err := b.Transform(tipValues(b.Tips(), comp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logMean := func(taxa []string) float64 {
		var sum float64
		for _, tx := range taxa {
			sum += math.Log(comp[tx])
		}
		return sum / float64(len(taxa))
	}
	for k, bl := range b.Balances() {
		r, s := float64(len(bl.Up)), float64(len(bl.Down))
		want := math.Sqrt(r*s/(r+s)) * (logMean(bl.Up) - logMean(bl.Down))
		if math.Abs(y[k]-want) > 1e-9 {
			t.Errorf("balance %s %v|%v: got %.6f, want %.6f", bl.Name(), bl.Up, bl.Down, y[k], want)
		}
	}
}

func TestInverse(t *testing.T) {
	pt := readTree(t, treeBlob, "test")

	weights := []philr.ILRWeight{philr.ILRUniform, philr.BLW, philr.BLWSqrt, philr.MeanDesc}
	for _, p := range [][]float64{nil, {0.5, 2, 1, 4, 3}} {
		for _, w := range weights {
			b, err := philr.NewBasis(pt, p, w)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			x := tipValues(b.Tips(), comp)
			y, err := b.Transform(x)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", w, err)
			}
			got, err := b.Inverse(y)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", w, err)
			}

			want := append([]float64(nil), x...)
			floats.Scale(1/floats.Sum(want), want)
			if !floats.EqualApprox(got, want, 1e-9) {
				t.Errorf("weights %v, %s: got %v, want %v", p, w, got, want)
			}
		}
	}
}

func TestIsometry(t *testing.T) {
	pt := readTree(t, treeBlob, "test")
	b, err := philr.NewBasis(pt, nil, philr.ILRUniform)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	x := tipValues(b.Tips(), comp)
	z := tipValues(b.Tips(), map[string]float64{"A": 1, "B": 5, "C": 2, "D": 9, "E": 3})
	yx, _ := b.Transform(x)
	yz, _ := b.Transform(z)

	clr := func(v []float64) []float64 {
		c := make([]float64, len(v))
		var m float64
		for i, e := range v {
			c[i] = math.Log(e)
			m += c[i]
		}
		m /= float64(len(v))
		for i := range c {
			c[i] -= m
		}
		return c
	}

	got := floats.Distance(yx, yz, 2)
	want := floats.Distance(clr(x), clr(z), 2)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("distance: got %.6f, want %.6f", got, want)
	}
}

func TestILRWeights(t *testing.T) {
	pt := readTree(t, treeBlob, "test")

	tests := map[philr.ILRWeight]map[string]float64{
		philr.BLW: {
			"A,B":       12,
			"D,E":       4,
			"C,D,E":     6,
			"A,B,C,D,E": 10,
		},
		philr.BLWSqrt: {
			"A,B": math.Sqrt(12),
			"D,E": 2,
		},
		philr.MeanDesc: {
			"A,B": 12,
			"D,E": 4,
		},
	}
	for w, want := range tests {
		b, err := philr.NewBasis(pt, nil, w)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, bl := range b.Balances() {
			all := append(append([]string(nil), bl.Up...), bl.Down...)
			slices.Sort(all)
			key := strings.Join(all, ",")
			v, ok := want[key]
			if !ok {
				continue
			}
			if math.Abs(bl.Weight-v) > 1e-9 {
				t.Errorf("%s: balance %s: got %.6f, want %.6f", w, key, bl.Weight, v)
			}
		}
	}
}

func TestTransformTable(t *testing.T) {
	pt := readTree(t, treeBlob, "test")

	species := []string{"E", "D", "C", "B", "A"}
	samples := []string{"s1", "s2", "s3"}
	tab, err := abundance.NewTable(species, samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, sp := range species {
		for j, s := range samples {
			tab.Set(sp, s, float64((i+1)*(j+2)))
		}
	}

	for _, part := range []philr.PartWeight{philr.PartUniform, philr.GMCounts, philr.ANorm, philr.ANormGMCounts} {
		r, err := philr.Transform(tab, pt, part, philr.BLWSqrt)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", part, err)
		}
		if g := r.Samples(); !reflect.DeepEqual(g, samples) {
			t.Errorf("%s: samples: got %v, want %v", part, g, samples)
		}
		rows, cols := r.Coords().Dims()
		if rows != len(samples) || cols != len(species)-1 {
			t.Errorf("%s: coords: got %d x %d, want %d x %d", part, rows, cols, len(samples), len(species)-1)
		}

		var w bytes.Buffer
		if err := r.TSV(&w); err != nil {
			t.Fatalf("%s: unable to write TSV: %v", part, err)
		}
		if err := r.BalancesTSV(&w); err != nil {
			t.Fatalf("%s: unable to write TSV: %v", part, err)
		}
	}

	tab.Set("A", "s2", 0)
	if _, err := philr.Transform(tab, pt, philr.PartUniform, philr.ILRUniform); !errors.Is(err, abundance.ErrInvalidInput) {
		t.Errorf("zero count: got error %v, want %v", err, abundance.ErrInvalidInput)
	}

	small, _ := abundance.NewTable([]string{"A", "B"}, samples)
	if _, err := philr.Transform(small, pt, philr.PartUniform, philr.ILRUniform); err == nil {
		t.Errorf("species mismatch: expecting error")
	}
}

func TestNotBinary(t *testing.T) {
	pt := readTree(t, polytomyBlob, "poly")
	if _, err := philr.NewBasis(pt, nil, philr.ILRUniform); !errors.Is(err, philr.ErrNotBinary) {
		t.Errorf("got error %v, want %v", err, philr.ErrNotBinary)
	}
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package abundance_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/js-arias/phylocomp/abundance"
)

func TestWeightsSum(t *testing.T) {
	p := abundance.DefaultParam()
	traits := [][]float64{
		{1},
		{1, 2, 3},
		{0.5, 1, 8, 13, 2},
		{1e-3, 1e3},
	}
	for _, tr := range traits {
		for _, d := range []float64{-2, -0.5, 0, 0.3, 1, 4} {
			w, err := p.Weights(d, tr)
			if err != nil {
				t.Fatalf("trait %v, disturbance %.2f: unexpected error: %v", tr, d, err)
			}
			var sum float64
			for _, v := range w {
				sum += v
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("trait %v, disturbance %.2f: got sum %.15f, want 1", tr, d, sum)
			}
		}
	}
}

func TestZeroDisturbance(t *testing.T) {
	p := abundance.DefaultParam()
	tr := []float64{1, 3, 7, 2, 12}
	w, err := p.Weights(0, tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 1 / float64(len(tr))
	for i, v := range w {
		if math.Abs(v-want) > 1e-12 {
			t.Errorf("species %d: got %.6f, want %.6f", i, v, want)
		}
	}
}

func TestExpectedExample(t *testing.T) {
	p := abundance.DefaultParam()
	mu, err := p.Expected(0, []float64{1, 1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range mu {
		if math.Abs(v-2500) > 1e-9 {
			t.Errorf("species %d: got %.6f, want %.6f", i, v, 2500.0)
		}
	}
}

func TestExpectedSum(t *testing.T) {
	p := abundance.DefaultParam()
	p.MuTotal = 5_000
	mu, err := p.Expected(0.7, []float64{1, 2, 3, 4, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sum float64
	for _, v := range mu {
		sum += v
	}
	if math.Abs(sum-p.MuTotal) > 1e-8 {
		t.Errorf("got sum %.6f, want %.6f", sum, p.MuTotal)
	}
}

func TestDisturbanceResponse(t *testing.T) {
	p := abundance.DefaultParam()
	tr := []float64{2, 1, 5, 3}
	maxSp, minSp := 2, 1

	prev, err := p.Weights(-1, tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for d := -0.9; d <= 1; d += 0.1 {
		w, err := p.Weights(d, tr)
		if err != nil {
			t.Fatalf("disturbance %.2f: unexpected error: %v", d, err)
		}
		if w[maxSp] <= prev[maxSp] {
			t.Errorf("disturbance %.2f: largest trait weight: got %.6f, want > %.6f", d, w[maxSp], prev[maxSp])
		}
		if w[minSp] >= prev[minSp] {
			t.Errorf("disturbance %.2f: smallest trait weight: got %.6f, want < %.6f", d, w[minSp], prev[minSp])
		}
		prev = w
	}
}

func TestInvalidInput(t *testing.T) {
	p := abundance.DefaultParam()
	tests := map[string]struct {
		d  float64
		tr []float64
	}{
		"zero trait":     {0.5, []float64{1.0, 0.0, 2.0}},
		"negative trait": {0.5, []float64{1.0, -3.0}},
		"empty trait":    {0.5, nil},
		"NaN trait":      {0.5, []float64{1, math.NaN()}},
		"NaN":            {math.NaN(), []float64{1, 2}},
		"infinite":       {math.Inf(1), []float64{1, 2}},
	}
	for name, test := range tests {
		_, err := p.Weights(test.d, test.tr)
		if !errors.Is(err, abundance.ErrInvalidInput) {
			t.Errorf("%s: got error %v, want %v", name, err, abundance.ErrInvalidInput)
		}
	}

	bad := p
	bad.Dispersion = 0
	if _, err := bad.Expected(0, []float64{1, 2}); !errors.Is(err, abundance.ErrInvalidInput) {
		t.Errorf("dispersion: got error %v, want %v", err, abundance.ErrInvalidInput)
	}
	bad = p
	bad.MuTotal = -1
	if _, err := bad.Expected(0, []float64{1, 2}); !errors.Is(err, abundance.ErrInvalidInput) {
		t.Errorf("total count: got error %v, want %v", err, abundance.ErrInvalidInput)
	}
}

func TestOverflow(t *testing.T) {
	p := abundance.DefaultParam()

	// without stabilization exp(3453) would overflow
	w, err := p.Weights(100, []float64{1e5, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(w[0]-1) > 1e-12 {
		t.Errorf("dominant species: got %.6f, want %.6f", w[0], 1.0)
	}

	if _, err := p.Weights(1e308, []float64{10, 2}); !errors.Is(err, abundance.ErrOverflow) {
		t.Errorf("got error %v, want %v", err, abundance.ErrOverflow)
	}
}

func TestCountOverflow(t *testing.T) {
	p := abundance.DefaultParam()
	p.MuTotal = 1e300

	_, err := p.Simulate(rand.NewPCG(3, 5), 0, []float64{1, 1})
	if !errors.Is(err, abundance.ErrOverflow) {
		t.Errorf("got error %v, want %v", err, abundance.ErrOverflow)
	}
}

func TestDeterminism(t *testing.T) {
	p := abundance.DefaultParam()
	tr := []float64{1, 2, 3, 4, 5, 6}

	a, err := p.Simulate(rand.NewPCG(7, 11), 0.4, tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := p.Simulate(rand.NewPCG(7, 11), 0.4, tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("got %v and %v, want equal counts", a, b)
	}
}

func TestSimulateMean(t *testing.T) {
	p := abundance.DefaultParam()
	tr := []float64{1, 2, 3, 4, 5}
	src := rand.NewPCG(1, 2)

	const draws = 4000
	var total float64
	for i := 0; i < draws; i++ {
		c, err := p.Simulate(src, 0.5, tr)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, v := range c {
			if v < 0 {
				t.Fatalf("negative count %d", v)
			}
			total += float64(v)
		}
	}
	mean := total / draws
	if math.Abs(mean-p.MuTotal) > 0.04*p.MuTotal {
		t.Errorf("mean total count: got %.2f, want %.2f", mean, p.MuTotal)
	}
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sim

import (
	"math"
	"testing"
)

func TestSpeciationRate(t *testing.T) {
	r, err := speciationRate(50, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (math.Log(50) - math.Log(2)) / 100
	if math.Abs(r-want) > 1e-12 {
		t.Errorf("rate: got %v, want %v", r, want)
	}
	if !(r > 0) {
		t.Errorf("rate: got %v, want a positive rate", r)
	}

	for _, terms := range []int{0, 1, 2} {
		if _, err := speciationRate(terms, 100); err == nil {
			t.Errorf("terms %d: expecting error", terms)
		}
	}
	for _, age := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := speciationRate(10, age); err == nil {
			t.Errorf("age %v: expecting error", age)
		}
	}
}

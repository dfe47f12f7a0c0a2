// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sample_test

import (
	"bytes"
	"math"
	"math/rand/v2"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/phylocomp/sample"
)

func TestSimulate(t *testing.T) {
	s, err := sample.Simulate(50, 1, rand.NewPCG(2, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 50 {
		t.Fatalf("samples: got %d, want %d", len(s), 50)
	}
	if d := s.Disturbance(); !slices.IsSorted(d) {
		t.Errorf("disturbance values should be sorted: %v", d)
	}
	if s[0].Name != "s1" || s[49].Name != "s50" {
		t.Errorf("names: got %q...%q, want %q...%q", s[0].Name, s[49].Name, "s1", "s50")
	}

	o, _ := sample.Simulate(50, 1, rand.NewPCG(2, 3))
	if !reflect.DeepEqual(s, o) {
		t.Errorf("same seed should produce the same samples")
	}

	if _, err := sample.Simulate(0, 1, rand.NewPCG(2, 3)); err == nil {
		t.Errorf("zero samples: expecting error")
	}
}

func TestTSV(t *testing.T) {
	s := sample.Samples{
		{Name: "b", Disturbance: 0.5},
		{Name: "a", Disturbance: -1.25},
		{Name: "c", Disturbance: 2},
	}
	s.Sort()
	if g := s.Names(); !reflect.DeepEqual(g, []string{"a", "b", "c"}) {
		t.Errorf("sorted names: got %v, want %v", g, []string{"a", "b", "c"})
	}

	var w bytes.Buffer
	if err := s.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	ns, err := sample.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}
	if !reflect.DeepEqual(ns, s) {
		t.Errorf("tsv: got %v, want %v", ns, s)
	}

	d, err := ns.Lookup([]string{"c", "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d[0]-2) > 1e-9 || math.Abs(d[1]+1.25) > 1e-9 {
		t.Errorf("lookup: got %v, want %v", d, []float64{2, -1.25})
	}
	if _, err := ns.Lookup([]string{"z"}); err == nil {
		t.Errorf("lookup of undefined sample: expecting error")
	}
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package abundance

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Table is an abundance table
// with the counts of a set of species
// (rows)
// in a set of samples
// (columns).
type Table struct {
	species []string
	samples []string
	spIdx   map[string]int
	smIdx   map[string]int
	m       *mat.Dense
}

// NewTable creates a new table
// with the given species and samples,
// and all counts set to zero.
func NewTable(species, samples []string) (*Table, error) {
	if len(species) == 0 {
		return nil, fmt.Errorf("%w: table without species", ErrInvalidInput)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: table without samples", ErrInvalidInput)
	}

	t := &Table{
		species: make([]string, 0, len(species)),
		samples: make([]string, 0, len(samples)),
		spIdx:   make(map[string]int, len(species)),
		smIdx:   make(map[string]int, len(samples)),
		m:       mat.NewDense(len(species), len(samples), nil),
	}
	for _, sp := range species {
		sp = strings.TrimSpace(sp)
		if sp == "" {
			return nil, fmt.Errorf("%w: empty species name", ErrInvalidInput)
		}
		if _, dup := t.spIdx[sp]; dup {
			return nil, fmt.Errorf("%w: repeated species %q", ErrInvalidInput, sp)
		}
		t.spIdx[sp] = len(t.species)
		t.species = append(t.species, sp)
	}
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%w: empty sample name", ErrInvalidInput)
		}
		if _, dup := t.smIdx[s]; dup {
			return nil, fmt.Errorf("%w: repeated sample %q", ErrInvalidInput, s)
		}
		t.smIdx[s] = len(t.samples)
		t.samples = append(t.samples, s)
	}
	return t, nil
}

// Table simulates an abundance table.
// Samples are simulated in order,
// using the same random source.
func (p Param) Table(src rand.Source, species []string, trait []float64, samples []string, disturbance []float64) (*Table, error) {
	if len(species) != len(trait) {
		return nil, fmt.Errorf("%w: %d species, %d trait values", ErrInvalidInput, len(species), len(trait))
	}
	if len(samples) != len(disturbance) {
		return nil, fmt.Errorf("%w: %d samples, %d disturbance values", ErrInvalidInput, len(samples), len(disturbance))
	}
	t, err := NewTable(species, samples)
	if err != nil {
		return nil, err
	}

	for j, d := range disturbance {
		counts, err := p.Simulate(src, d, trait)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", samples[j], err)
		}
		for i, c := range counts {
			t.m.Set(i, j, float64(c))
		}
	}
	return t, nil
}

// At returns the count of a species in a sample.
// It returns 0 if the species or the sample
// are not in the table.
func (t *Table) At(species, sample string) float64 {
	i, ok := t.spIdx[species]
	if !ok {
		return 0
	}
	j, ok := t.smIdx[sample]
	if !ok {
		return 0
	}
	return t.m.At(i, j)
}

// Set sets the count of a species in a sample.
func (t *Table) Set(species, sample string, v float64) error {
	i, ok := t.spIdx[species]
	if !ok {
		return fmt.Errorf("species %q not in table", species)
	}
	j, ok := t.smIdx[sample]
	if !ok {
		return fmt.Errorf("sample %q not in table", sample)
	}
	t.m.Set(i, j, v)
	return nil
}

// Species returns the species in the table
// in row order.
func (t *Table) Species() []string {
	sp := make([]string, len(t.species))
	copy(sp, t.species)
	return sp
}

// Samples returns the samples in the table
// in column order.
func (t *Table) Samples() []string {
	s := make([]string, len(t.samples))
	copy(s, t.samples)
	return s
}

// Sample returns the counts of a sample
// in species order.
func (t *Table) Sample(sample string) []float64 {
	j, ok := t.smIdx[sample]
	if !ok {
		return nil
	}
	return mat.Col(nil, j, t.m)
}

// Row returns the counts of a species
// in sample order.
func (t *Table) Row(species string) []float64 {
	i, ok := t.spIdx[species]
	if !ok {
		return nil
	}
	return mat.Row(nil, i, t.m)
}

// Matrix returns a read only view of the counts.
func (t *Table) Matrix() mat.Matrix {
	return t.m
}

// Pseudocount replaces any count equal to zero
// with the given value.
// It returns the number of replaced cells.
func (t *Table) Pseudocount(v float64) (int, error) {
	if !(v > 0) {
		return 0, fmt.Errorf("%w: pseudocount %v", ErrInvalidInput, v)
	}

	r, c := t.m.Dims()
	var n int
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if t.m.At(i, j) == 0 {
				t.m.Set(i, j, v)
				n++
			}
		}
	}
	return n, nil
}

// IsPositive returns true if all counts in the table
// are greater than zero,
// as required by log-ratio transformations.
func (t *Table) IsPositive() bool {
	r, c := t.m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !(t.m.At(i, j) > 0) {
				return false
			}
		}
	}
	return true
}

// Reorder returns a new table
// with the rows in the indicated species order.
// All species must be in the table.
func (t *Table) Reorder(species []string) (*Table, error) {
	nt, err := NewTable(species, t.samples)
	if err != nil {
		return nil, err
	}
	for i, sp := range nt.species {
		oi, ok := t.spIdx[sp]
		if !ok {
			return nil, fmt.Errorf("%w: species %q not in table", ErrInvalidInput, sp)
		}
		nt.m.SetRow(i, mat.Row(nil, oi, t.m))
	}
	return nt, nil
}

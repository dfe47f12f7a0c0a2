// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package philr

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/phylo"
	"gonum.org/v1/gonum/mat"
)

// Result contains the balances
// of each sample of an abundance table.
type Result struct {
	basis   *Basis
	samples []string

	// samples x balances
	coord *mat.Dense
}

// Transform transforms each sample of an abundance table.
// The species of the table must be the terminals of the tree,
// and all counts must be greater than zero
// (i.e., zeros should be replaced with a pseudocount).
func Transform(tab *abundance.Table, t *phylo.Tree, part PartWeight, ilr ILRWeight) (*Result, error) {
	if !tab.IsPositive() {
		return nil, fmt.Errorf("philr: %w: table with non-positive counts", abundance.ErrInvalidInput)
	}
	tips := t.Tips()
	if n := len(tab.Species()); n != len(tips) {
		return nil, fmt.Errorf("philr: %w: %d species in table, %d terminals in tree %q", abundance.ErrInvalidInput, n, len(tips), t.Name())
	}
	ordered, err := tab.Reorder(tips)
	if err != nil {
		return nil, fmt.Errorf("philr: tree %q: %w", t.Name(), err)
	}

	p, err := part.Weights(ordered)
	if err != nil {
		return nil, fmt.Errorf("philr: %v", err)
	}
	b, err := NewBasis(t, p, ilr)
	if err != nil {
		return nil, err
	}

	samples := ordered.Samples()
	r := &Result{
		basis:   b,
		samples: samples,
		coord:   mat.NewDense(len(samples), len(b.balances), nil),
	}
	for i, s := range samples {
		y, err := b.Transform(ordered.Sample(s))
		if err != nil {
			return nil, fmt.Errorf("sample %q: %v", s, err)
		}
		r.coord.SetRow(i, y)
	}
	return r, nil
}

// Basis returns the basis used for the transformation.
func (r *Result) Basis() *Basis {
	return r.basis
}

// Samples returns the transformed samples.
func (r *Result) Samples() []string {
	return append([]string(nil), r.samples...)
}

// Balance returns the values of a balance
// for all samples.
func (r *Result) Balance(node int) []float64 {
	for k, b := range r.basis.balances {
		if b.Node == node {
			return mat.Col(nil, k, r.coord)
		}
	}
	return nil
}

// Coords returns the balances of each sample
// as a samples x balances matrix.
func (r *Result) Coords() mat.Matrix {
	return r.coord
}

// TSV writes the balances of each sample
// as a TSV file.
// The file contains the fields
// sample, balance, and value.
func (r *Result) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"sample", "balance", "value"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, s := range r.samples {
		for k, b := range r.basis.balances {
			row := []string{
				s,
				b.Name(),
				strconv.FormatFloat(r.coord.At(i, k), 'f', 6, 64),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// BalancesTSV writes the definition of each balance
// as a TSV file,
// with the fields balance, node, weight, up, and down.
// Terminals in each side are separated by commas.
func (r *Result) BalancesTSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"balance", "node", "weight", "up", "down"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, b := range r.basis.balances {
		row := []string{
			b.Name(),
			strconv.Itoa(b.Node),
			strconv.FormatFloat(b.Weight, 'f', 6, 64),
			strings.Join(b.Up, ","),
			strings.Join(b.Down, ","),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

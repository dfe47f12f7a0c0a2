// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package philr implements the phylogenetic
// isometric log-ratio transform (PhILR)
// of compositional data.
//
// Each internal node of a rooted binary tree
// defines a balance:
// a log-contrast between the terminals
// of its two descendant clades.
// The set of balances is an orthonormal basis
// of the (possibly weighted) simplex,
// so the transform can be inverted.
package philr

import (
	"errors"
	"fmt"
	"math"

	"github.com/js-arias/phylocomp/phylo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNotBinary is returned when the tree
// has a node with more than two descendants.
var ErrNotBinary = errors.New("tree is not binary")

// A Balance is the log-contrast
// defined by an internal node.
type Balance struct {
	// ID of the node
	Node int

	// Terminals in the first descendant
	// (numerator of the ratio).
	Up []string

	// Terminals in the second descendant
	// (denominator of the ratio).
	Down []string

	// Weight applied to the coordinate.
	Weight float64
}

// Name returns the name of the balance.
func (b Balance) Name() string {
	return fmt.Sprintf("n%d", b.Node)
}

// Basis is a phylogenetic basis
// for the isometric log-ratio transform.
type Basis struct {
	tips     []string
	balances []Balance
	p        []float64

	// psi is a D x (D-1) matrix
	// with the contrast of each balance
	// as a column.
	psi *mat.Dense
}

// NewBasis builds a basis from the sequential binary partition
// defined by a rooted binary tree.
//
// Part weights are given in the order of the tree terminals
// (as returned by the Tips method of the tree);
// if p is nil,
// all parts will have the same weight.
func NewBasis(t *phylo.Tree, p []float64, ilr ILRWeight) (*Basis, error) {
	if !t.IsBinary() {
		return nil, ErrNotBinary
	}
	switch ilr {
	case ILRUniform, BLW, BLWSqrt, MeanDesc:
	case "":
		ilr = ILRUniform
	default:
		return nil, fmt.Errorf("philr: unknown balance weight %q", ilr)
	}
	tips := t.Tips()
	if len(tips) < 2 {
		return nil, fmt.Errorf("philr: tree %q with less than two terminals", t.Name())
	}

	if p == nil {
		p = make([]float64, len(tips))
		for i := range p {
			p[i] = 1
		}
	}
	if len(p) != len(tips) {
		return nil, fmt.Errorf("philr: %d part weights for %d terminals", len(p), len(tips))
	}
	for i, v := range p {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("philr: terminal %q: invalid part weight %v", tips[i], v)
		}
	}

	tipIdx := make(map[string]int, len(tips))
	for i, tx := range tips {
		tipIdx[tx] = i
	}

	in := t.Internal()
	b := &Basis{
		tips:     tips,
		balances: make([]Balance, 0, len(in)),
		p:        append([]float64(nil), p...),
		psi:      mat.NewDense(len(tips), len(in), nil),
	}
	for k, id := range in {
		children := t.Children(id)
		up := t.Desc(children[0])
		down := t.Desc(children[1])

		var r, s float64
		for _, tx := range up {
			r += p[tipIdx[tx]]
		}
		for _, tx := range down {
			s += p[tipIdx[tx]]
		}
		pos := math.Sqrt(s / (r * (r + s)))
		neg := -math.Sqrt(r / (s * (r + s)))
		for _, tx := range up {
			b.psi.Set(tipIdx[tx], k, pos)
		}
		for _, tx := range down {
			b.psi.Set(tipIdx[tx], k, neg)
		}

		b.balances = append(b.balances, Balance{
			Node:   id,
			Up:     up,
			Down:   down,
			Weight: ilr.weight(t, children),
		})
	}
	return b, nil
}

// Balances returns the balances of the basis,
// in the order of the coordinates.
func (b *Basis) Balances() []Balance {
	bs := make([]Balance, len(b.balances))
	copy(bs, b.balances)
	return bs
}

// Tips returns the terminals of the basis,
// in the order expected for the parts.
func (b *Basis) Tips() []string {
	return append([]string(nil), b.tips...)
}

// Contrast returns the contrast matrix
// with a column for each balance.
func (b *Basis) Contrast() mat.Matrix {
	return b.psi
}

// Transform returns the balances
// of a composition.
// The parts must be in the order of the basis terminals
// and all must be greater than zero.
func (b *Basis) Transform(x []float64) ([]float64, error) {
	if len(x) != len(b.tips) {
		return nil, fmt.Errorf("philr: %d parts, want %d", len(x), len(b.tips))
	}

	// closure and shift
	sum := floats.Sum(x)
	ls := make([]float64, len(x))
	for i, v := range x {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("philr: terminal %q: invalid part value %v", b.tips[i], v)
		}
		ls[i] = math.Log(v / sum / b.p[i])
	}

	// weighted clr
	center := floats.Dot(b.p, ls) / floats.Sum(b.p)
	for i := range ls {
		ls[i] = (ls[i] - center) * b.p[i]
	}

	var y mat.VecDense
	y.MulVec(b.psi.T(), mat.NewVecDense(len(ls), ls))

	coord := make([]float64, len(b.balances))
	for k, bl := range b.balances {
		coord[k] = y.AtVec(k) * bl.Weight
	}
	return coord, nil
}

// Inverse returns the closed composition
// of a set of balances.
func (b *Basis) Inverse(y []float64) ([]float64, error) {
	if len(y) != len(b.balances) {
		return nil, fmt.Errorf("philr: %d balances, want %d", len(y), len(b.balances))
	}

	v := make([]float64, len(y))
	for k, bl := range b.balances {
		if bl.Weight == 0 {
			return nil, fmt.Errorf("philr: balance %s: zero weight", bl.Name())
		}
		v[k] = y[k] / bl.Weight
	}

	var clr mat.VecDense
	clr.MulVec(b.psi, mat.NewVecDense(len(v), v))

	x := make([]float64, len(b.tips))
	for i := range x {
		x[i] = b.p[i] * math.Exp(clr.AtVec(i))
	}
	floats.Scale(1/floats.Sum(x), x)
	return x, nil
}

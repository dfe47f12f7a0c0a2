// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package philr

import (
	"fmt"
	"math"
	"strings"

	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/phylo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PartWeight is the method used to weight
// the parts
// (i.e., the terminals)
// of a composition.
type PartWeight string

// Valid part weights.
const (
	// All parts have the same weight.
	PartUniform PartWeight = "uniform"

	// Geometric mean of the counts
	// of the part across samples.
	GMCounts PartWeight = "gm.counts"

	// Norm of the clr coordinates
	// of the part across samples.
	ANorm PartWeight = "anorm"

	// Product of the norm of the clr coordinates
	// and the geometric mean of the counts.
	ANormGMCounts PartWeight = "anorm.x.gm.counts"
)

// ParsePartWeight returns a part weight method
// from a string.
func ParsePartWeight(s string) (PartWeight, error) {
	w := PartWeight(strings.ToLower(strings.TrimSpace(s)))
	switch w {
	case PartUniform, GMCounts, ANorm, ANormGMCounts:
		return w, nil
	case "":
		return PartUniform, nil
	}
	return "", fmt.Errorf("unknown part weight %q", s)
}

// Weights returns the part weights
// for the species of an abundance table.
// The table must be positive.
func (w PartWeight) Weights(tab *abundance.Table) ([]float64, error) {
	species := tab.Species()
	p := make([]float64, len(species))
	switch w {
	case PartUniform, "":
		for i := range p {
			p[i] = 1
		}
		return p, nil
	case GMCounts:
		return gmCounts(tab)
	case ANorm:
		return aNorm(tab)
	case ANormGMCounts:
		gm, err := gmCounts(tab)
		if err != nil {
			return nil, err
		}
		an, err := aNorm(tab)
		if err != nil {
			return nil, err
		}
		floats.Mul(gm, an)
		return gm, nil
	}
	return nil, fmt.Errorf("unknown part weight %q", w)
}

func gmCounts(tab *abundance.Table) ([]float64, error) {
	species := tab.Species()
	p := make([]float64, len(species))
	for i, sp := range species {
		row := tab.Row(sp)
		for _, v := range row {
			if !(v > 0) {
				return nil, fmt.Errorf("species %q: invalid count %v", sp, v)
			}
		}
		p[i] = stat.GeometricMean(row, nil)
	}
	return p, nil
}

func aNorm(tab *abundance.Table) ([]float64, error) {
	species := tab.Species()
	samples := tab.Samples()

	clr := mat.NewDense(len(species), len(samples), nil)
	for j, s := range samples {
		col := tab.Sample(s)
		for i, v := range col {
			if !(v > 0) {
				return nil, fmt.Errorf("species %q: sample %q: invalid count %v", species[i], s, v)
			}
			col[i] = math.Log(v)
		}
		m := stat.Mean(col, nil)
		for i, v := range col {
			clr.Set(i, j, v-m)
		}
	}

	p := make([]float64, len(species))
	for i := range p {
		p[i] = floats.Norm(mat.Row(nil, i, clr), 2)
	}
	return p, nil
}

// ILRWeight is the method used to weight
// the balances.
type ILRWeight string

// Valid balance weights.
const (
	// All balances have the same weight.
	ILRUniform ILRWeight = "uniform"

	// Sum of the branch lengths
	// of the two descendants of the node.
	BLW ILRWeight = "blw"

	// Square root of the sum of the branch lengths
	// of the two descendants of the node.
	BLWSqrt ILRWeight = "blw.sqrt"

	// Sum of the mean distance from the node
	// to the terminals of each descendant.
	MeanDesc ILRWeight = "mean.descendants"
)

// ParseILRWeight returns a balance weight method
// from a string.
func ParseILRWeight(s string) (ILRWeight, error) {
	w := ILRWeight(strings.ToLower(strings.TrimSpace(s)))
	switch w {
	case ILRUniform, BLW, BLWSqrt, MeanDesc:
		return w, nil
	case "":
		return ILRUniform, nil
	}
	return "", fmt.Errorf("unknown balance weight %q", s)
}

func (w ILRWeight) weight(t *phylo.Tree, children []int) float64 {
	switch w {
	case BLW:
		return t.BranchLen(children[0]) + t.BranchLen(children[1])
	case BLWSqrt:
		return math.Sqrt(t.BranchLen(children[0]) + t.BranchLen(children[1]))
	case MeanDesc:
		var sum float64
		for _, c := range children {
			sum += t.BranchLen(c) + t.MeanTipDist(c)
		}
		return sum
	}
	return 1
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package trait

import (
	"math"
	"math/rand/v2"

	"github.com/js-arias/phylocomp/phylo"
	"gonum.org/v1/gonum/stat/distuv"
)

// Param is a collection of parameters
// for the simulation of trait evolution.
type Param struct {
	// Root is the trait value at the root.
	Root float64

	// Sigma is the standard deviation
	// of the change in the logarithm of the trait
	// per square root of million years.
	Sigma float64

	// If Discrete is true,
	// values at the terminals are rounded
	// to an integer greater than or equal to one
	// (as in gene copy numbers).
	Discrete bool
}

// Evolve simulates the evolution of a trait
// along the branches of a tree,
// as a brownian motion of the logarithm of the trait.
// It returns the trait values at the terminals.
func Evolve(t *phylo.Tree, p Param, src rand.Source) *Data {
	d := New()
	evolve(t, t.Root(), math.Log(p.Root), p, src, d)
	return d
}

func evolve(t *phylo.Tree, id int, x float64, p Param, src rand.Source, d *Data) {
	if bl := t.BranchLen(id); bl > 0 && p.Sigma > 0 {
		n := distuv.Normal{
			Mu:    0,
			Sigma: p.Sigma * math.Sqrt(bl),
			Src:   src,
		}
		x += n.Rand()
	}

	if !t.IsTerm(id) {
		for _, c := range t.Children(id) {
			evolve(t, c, x, p, src, d)
		}
		return
	}

	v := math.Exp(x)
	if p.Discrete {
		v = math.Max(1, math.Round(v))
	}
	d.taxon[canon(t.Desc(id)[0])] = v
}

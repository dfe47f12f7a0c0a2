// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylofactor implements phylogenetic factorization
// of compositional data.
//
// Phylofactorization is a greedy algorithm
// that, at each step,
// picks the edge of the tree
// whose isometric log-ratio balance
// (between the terminals at each side of the edge)
// is best explained by a covariate,
// and splits the terminals into two bins.
package phylofactor

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/regress"
	"gonum.org/v1/gonum/stat"
)

// Choice is the objective function
// used to pick a factor.
type Choice string

// Valid objective functions.
const (
	// Explained variance
	// (i.e., the regression sum of squares).
	Var Choice = "var"

	// F statistic of the regression.
	FStat Choice = "F"
)

// ParseChoice returns an objective function
// from a string.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "var", "":
		return Var, nil
	case "f":
		return FStat, nil
	}
	return "", fmt.Errorf("unknown objective function %q", s)
}

// Param is a collection of parameters
// for a phylofactorization.
type Param struct {
	// Number of factors
	Factors int

	// Objective function
	Choice Choice

	// Number of goroutines used to evaluate
	// the candidate edges.
	// If zero, it will use the number of CPUs.
	Workers int
}

// A Factor is an edge of the tree
// that splits a bin
// into two groups of terminals.
type Factor struct {
	// ID of the node below the edge
	Edge int

	// Terminals below the edge
	Group []string

	// Other terminals in the bin
	Complement []string

	// ILR balance between Group and Complement
	// for each sample.
	Balance []float64

	// Regression of the balance on the covariate
	Fit regress.Linear

	// Value of the objective function
	Objective float64

	// Fraction of the total variance
	// explained by the factor.
	ExpVar float64
}

// Result is the result
// of a phylofactorization.
type Result struct {
	samples   []string
	covariate []float64
	factors   []Factor
	bins      [][]string
	totalVar  float64
}

// Factorize performs a phylogenetic factorization
// of an abundance table
// using the covariate x
// (one value per sample, in table order).
//
// All counts in the table must be greater than zero,
// and the species of the table
// must be the terminals of the tree.
// The result might have fewer factors than requested
// if there are no more edges to split.
func Factorize(tab *abundance.Table, t *phylo.Tree, x []float64, p Param) (*Result, error) {
	if p.Factors < 1 {
		return nil, fmt.Errorf("phylofactor: invalid number of factors: %d", p.Factors)
	}
	if p.Choice == "" {
		p.Choice = Var
	}
	if p.Choice != Var && p.Choice != FStat {
		return nil, fmt.Errorf("phylofactor: unknown objective function %q", p.Choice)
	}
	if p.Workers < 1 {
		p.Workers = runtime.NumCPU()
	}

	if !tab.IsPositive() {
		return nil, fmt.Errorf("phylofactor: %w: table with non-positive counts", abundance.ErrInvalidInput)
	}
	samples := tab.Samples()
	if len(x) != len(samples) {
		return nil, fmt.Errorf("phylofactor: %w: %d covariate values for %d samples", abundance.ErrInvalidInput, len(x), len(samples))
	}
	tips := t.Tips()
	if n := len(tab.Species()); n != len(tips) {
		return nil, fmt.Errorf("phylofactor: %w: %d species in table, %d terminals in tree %q", abundance.ErrInvalidInput, n, len(tips), t.Name())
	}
	ordered, err := tab.Reorder(tips)
	if err != nil {
		return nil, fmt.Errorf("phylofactor: tree %q: %w", t.Name(), err)
	}

	logs := make(map[string][]float64, len(tips))
	for _, tx := range tips {
		row := ordered.Row(tx)
		for i, v := range row {
			row[i] = math.Log(v)
		}
		logs[tx] = row
	}

	r := &Result{
		samples:   samples,
		covariate: append([]float64(nil), x...),
		bins:      [][]string{sortedCopy(tips)},
		totalVar:  totalVar(logs, tips, len(samples)),
	}

	edges := t.Edges()
	desc := make(map[int][]string, len(edges))
	for _, e := range edges {
		desc[e] = t.Desc(e)
	}

	for len(r.factors) < p.Factors {
		cands := candidates(r.bins, edges, desc)
		if len(cands) == 0 {
			break
		}
		if err := score(cands, logs, x, p); err != nil {
			return nil, err
		}

		best := 0
		for i, c := range cands {
			if c.objective > cands[best].objective {
				best = i
			}
		}
		c := cands[best]

		f := Factor{
			Edge:       c.edge,
			Group:      c.group,
			Complement: c.complement,
			Balance:    c.balance,
			Fit:        c.fit,
			Objective:  c.objective,
		}
		if r.totalVar > 0 {
			f.ExpVar = c.fit.ESS / r.totalVar
		}
		r.factors = append(r.factors, f)

		r.bins[c.bin] = c.group
		r.bins = append(r.bins, c.complement)
	}

	return r, nil
}

// TotalVar returns the sum of squares
// of the clr-transformed data
// around the mean of each terminal.
func totalVar(logs map[string][]float64, tips []string, n int) float64 {
	clr := make([][]float64, len(tips))
	for i := range clr {
		clr[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		var m float64
		for _, tx := range tips {
			m += logs[tx][j]
		}
		m /= float64(len(tips))
		for i, tx := range tips {
			clr[i][j] = logs[tx][j] - m
		}
	}

	var sum float64
	for _, row := range clr {
		m := stat.Mean(row, nil)
		for _, v := range row {
			sum += (v - m) * (v - m)
		}
	}
	return sum
}

// Factors returns the factors
// in the order they were found.
func (r *Result) Factors() []Factor {
	f := make([]Factor, len(r.factors))
	copy(f, r.factors)
	return f
}

// Bins returns the sets of terminals
// that result from the factorization.
func (r *Result) Bins() [][]string {
	bins := make([][]string, len(r.bins))
	for i, b := range r.bins {
		bins[i] = append([]string(nil), b...)
	}
	return bins
}

// TotalVar returns the total variance
// of the clr-transformed data
// (as a sum of squares).
func (r *Result) TotalVar() float64 {
	return r.totalVar
}

// Samples returns the names of the samples.
func (r *Result) Samples() []string {
	return append([]string(nil), r.samples...)
}

// Covariate returns the covariate values
// of the samples.
func (r *Result) Covariate() []float64 {
	return append([]float64(nil), r.covariate...)
}

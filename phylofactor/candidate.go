// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofactor

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/js-arias/phylocomp/regress"
)

// A candidate is a possible split of a bin.
type candidate struct {
	bin        int
	edge       int
	group      []string
	complement []string

	balance   []float64
	fit       regress.Linear
	objective float64
	err       error
}

// Candidates returns the possible splits
// of the current bins.
// Candidates are ordered by bin,
// and then by edge ID.
func candidates(bins [][]string, edges []int, desc map[int][]string) []*candidate {
	var cands []*candidate
	for bi, b := range bins {
		in := make(map[string]bool, len(b))
		for _, tx := range b {
			in[tx] = true
		}

		seen := make(map[string]bool)
		for _, e := range edges {
			var g []string
			for _, tx := range desc[e] {
				if in[tx] {
					g = append(g, tx)
				}
			}
			if len(g) == 0 || len(g) == len(b) {
				continue
			}
			key := strings.Join(g, "\x00")
			if seen[key] {
				continue
			}
			seen[key] = true

			gs := make(map[string]bool, len(g))
			for _, tx := range g {
				gs[tx] = true
			}
			comp := make([]string, 0, len(b)-len(g))
			for _, tx := range b {
				if !gs[tx] {
					comp = append(comp, tx)
				}
			}
			cands = append(cands, &candidate{
				bin:        bi,
				edge:       e,
				group:      g,
				complement: comp,
			})
		}
	}
	return cands
}

// Score evaluates the candidates
// using a pool of goroutines.
func score(cands []*candidate, logs map[string][]float64, x []float64, p Param) error {
	jobs := make(chan *candidate, p.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				c.eval(logs, x, p.Choice)
			}
		}()
	}

	for _, c := range cands {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	for _, c := range cands {
		if c.err != nil {
			return fmt.Errorf("phylofactor: edge %d: %v", c.edge, c.err)
		}
	}
	return nil
}

func (c *candidate) eval(logs map[string][]float64, x []float64, choice Choice) {
	c.balance = Balance(logs, c.group, c.complement, len(x))
	fit, err := regress.Fit(c.balance, x)
	if err != nil {
		c.err = err
		return
	}
	c.fit = fit

	switch choice {
	case FStat:
		c.objective = fit.F
	default:
		c.objective = fit.ESS
	}
	if math.IsNaN(c.objective) {
		c.objective = math.Inf(-1)
	}
}

// Balance returns the isometric log-ratio balance
// between two groups of terminals,
// for each of n samples,
// given the logarithm of the counts of each terminal.
func Balance(logs map[string][]float64, group, complement []string, n int) []float64 {
	r := float64(len(group))
	s := float64(len(complement))
	coef := math.Sqrt(r * s / (r + s))

	b := make([]float64, n)
	for j := range b {
		var g, c float64
		for _, tx := range group {
			g += logs[tx][j]
		}
		for _, tx := range complement {
			c += logs[tx][j]
		}
		b[j] = coef * (g/r - c/s)
	}
	return b
}

func sortedCopy(s []string) []string {
	c := slices.Clone(s)
	slices.Sort(c)
	return c
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trait provides a list of numerical trait values
// (for example, the gene copy number)
// for a taxon list.
package trait

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Data is a collection of trait values
// observed in a set of taxa.
type Data struct {
	taxon map[string]float64
}

// New creates a new empty data set.
func New() *Data {
	return &Data{
		taxon: make(map[string]float64),
	}
}

// Set sets the trait value of a taxon.
// The value must be greater than zero.
func (d *Data) Set(taxon string, v float64) error {
	taxon = canon(taxon)
	if taxon == "" {
		return nil
	}
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("taxon %q: invalid trait value %v", taxon, v)
	}
	d.taxon[taxon] = v
	return nil
}

// Value returns the trait value of a taxon.
func (d *Data) Value(taxon string) (float64, bool) {
	v, ok := d.taxon[canon(taxon)]
	return v, ok
}

// Taxa returns the taxa with trait values
// in a data set.
func (d *Data) Taxa() []string {
	taxa := make([]string, 0, len(d.taxon))
	for tx := range d.taxon {
		taxa = append(taxa, tx)
	}
	slices.Sort(taxa)
	return taxa
}

// Values returns the trait values
// in the order of the given taxa.
// All taxa must have a trait value.
func (d *Data) Values(taxa []string) ([]float64, error) {
	vals := make([]float64, 0, len(taxa))
	for _, tx := range taxa {
		v, ok := d.Value(tx)
		if !ok {
			return nil, fmt.Errorf("taxon %q without trait value", tx)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// Canon returns a taxon name
// without extra spaces.
func canon(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

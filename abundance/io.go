// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package abundance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var header = []string{"species", "sample", "count"}

// ReadTSV reads an abundance table from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - species, the name of the species (a terminal in the tree)
//   - sample, the name of the sample
//   - count, the number of sequence counts
//
// Here is an example file:
//
//	species	sample	count
//	t1	s1	120
//	t1	s2	0.65
//	t2	s1	4512
//	t2	s2	3301
//
// Rows and columns are kept in the order
// in which they are first found in the file.
// Species-sample pairs not in the file
// will have a count of 0.
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	type cell struct {
		species, sample string
		count           float64
	}
	var cells []cell
	var species, samples []string
	spSeen := make(map[string]bool)
	smSeen := make(map[string]bool)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "species"
		sp := strings.TrimSpace(row[fields[f]])
		if sp == "" {
			continue
		}

		f = "sample"
		s := strings.TrimSpace(row[fields[f]])
		if s == "" {
			continue
		}

		f = "count"
		c, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %q: %v", ln, f, row[fields[f]], err)
		}
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("on row %d: field %q: %w: count %v", ln, f, ErrInvalidInput, c)
		}

		if !spSeen[sp] {
			spSeen[sp] = true
			species = append(species, sp)
		}
		if !smSeen[s] {
			smSeen[s] = true
			samples = append(samples, s)
		}
		cells = append(cells, cell{species: sp, sample: s, count: c})
	}

	t, err := NewTable(species, samples)
	if err != nil {
		return nil, err
	}
	for _, c := range cells {
		t.Set(c.species, c.sample, c.count)
	}
	return t, nil
}

// TSV writes an abundance table as a TSV file.
func (t *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, sp := range t.species {
		for j, s := range t.samples {
			row := []string{
				sp,
				s,
				strconv.FormatFloat(t.m.At(i, j), 'f', -1, 64),
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

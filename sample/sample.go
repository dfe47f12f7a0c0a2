// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sample implements a list of samples
// with the disturbance frequency
// (an environmental covariate)
// of each sample.
package sample

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// A Sample is a sample
// with its disturbance frequency.
type Sample struct {
	Name        string
	Disturbance float64
}

// Samples is a list of samples.
type Samples []Sample

// Simulate returns n samples
// with a log-scaled disturbance frequency
// drawn from an exponential distribution
// with the given rate.
// Samples are sorted by its disturbance
// and named from "s1" to "sn".
func Simulate(n int, rate float64, src rand.Source) (Samples, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid number of samples: %d", n)
	}
	if !(rate > 0) {
		return nil, fmt.Errorf("invalid rate: %v", rate)
	}

	e := distuv.Exponential{
		Rate: rate,
		Src:  src,
	}
	d := make([]float64, n)
	for i := range d {
		d[i] = math.Log(e.Rand())
	}
	slices.Sort(d)

	s := make(Samples, n)
	for i, v := range d {
		s[i] = Sample{
			Name:        fmt.Sprintf("s%d", i+1),
			Disturbance: v,
		}
	}
	return s, nil
}

// Names returns the names of the samples.
func (s Samples) Names() []string {
	names := make([]string, len(s))
	for i, v := range s {
		names[i] = v.Name
	}
	return names
}

// Disturbance returns the disturbance values
// of the samples.
func (s Samples) Disturbance() []float64 {
	d := make([]float64, len(s))
	for i, v := range s {
		d[i] = v.Disturbance
	}
	return d
}

// Sort sorts the samples by its disturbance.
func (s Samples) Sort() {
	slices.SortStableFunc(s, func(a, b Sample) int {
		return cmp.Compare(a.Disturbance, b.Disturbance)
	})
}

// Lookup returns the disturbance values
// in the order of the given sample names.
func (s Samples) Lookup(names []string) ([]float64, error) {
	idx := make(map[string]float64, len(s))
	for _, v := range s {
		idx[v.Name] = v.Disturbance
	}
	d := make([]float64, 0, len(names))
	for _, n := range names {
		v, ok := idx[n]
		if !ok {
			return nil, fmt.Errorf("sample %q without disturbance value", n)
		}
		d = append(d, v)
	}
	return d, nil
}

var header = []string{"sample", "disturbance"}

// ReadTSV reads a list of samples from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - sample, the name of the sample
//   - disturbance, the (log-scaled) disturbance frequency
//
// Here is an example file:
//
//	sample	disturbance
//	s1	-2.315400
//	s2	-0.671032
//	s3	0.412873
func ReadTSV(r io.Reader) (Samples, error) {
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

	var s Samples
	seen := make(map[string]bool)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "sample"
		name := strings.TrimSpace(row[fields[f]])
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("on row %d: field %q: repeated sample %q", ln, f, name)
		}
		seen[name] = true

		f = "disturbance"
		v, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %q: %v", ln, f, row[fields[f]], err)
		}
		s = append(s, Sample{Name: name, Disturbance: v})
	}
	return s, nil
}

// TSV writes a list of samples as a TSV file.
func (s Samples) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, v := range s {
		row := []string{
			v.Name,
			strconv.FormatFloat(v.Disturbance, 'f', 6, 64),
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

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements reading and writing
// of the parameters used for the simulation
// and analysis of abundance data.
package param

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/philr"
	"github.com/js-arias/phylocomp/phylofactor"
)

// Param is a keyword to identify
// the type of parameter in a parameter file.
type Param string

// Valid parameters
const (
	// MuTotal is the expected number of counts
	// in a sample.
	MuTotal Param = "mutotal"

	// Dispersion is the size parameter
	// of the negative binomial distribution.
	Dispersion Param = "dispersion"

	// Scale is the coefficient of the response
	// of the abundance to the disturbance.
	Scale Param = "scale"

	// Pseudocount is the value used to replace
	// zero counts.
	Pseudocount Param = "pseudocount"

	// PartWeights is the method used to weight
	// the parts in PhILR.
	PartWeights Param = "partweights"

	// ILRWeights is the method used to weight
	// the balances in PhILR.
	ILRWeights Param = "ilrweights"

	// Factors is the number of factors
	// in a phylofactorization.
	Factors Param = "factors"

	// Choice is the objective function
	// of the phylofactorization.
	Choice Param = "choice"
)

// Params returns the list of valid parameters.
func Params() []Param {
	return []Param{
		MuTotal,
		Dispersion,
		Scale,
		Pseudocount,
		PartWeights,
		ILRWeights,
		Factors,
		Choice,
	}
}

// AP represents a collection of analysis parameters.
type AP struct {
	name string // file name

	// simulation
	abund  abundance.Param
	pseudo float64

	// PhILR
	part philr.PartWeight
	ilr  philr.ILRWeight

	// phylofactorization
	factors int
	choice  phylofactor.Choice
}

// New creates a new parameter collection
// with default values.
func New(name string) *AP {
	return &AP{
		name:    name,
		abund:   abundance.DefaultParam(),
		pseudo:  abundance.DefPseudocount,
		part:    philr.PartUniform,
		ilr:     philr.BLWSqrt,
		factors: 3,
		choice:  phylofactor.Var,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# phylocomp analysis parameters
//	parameter	value
//	mutotal	10000
//	dispersion	1
//	scale	3
//	pseudocount	0.65
//	partweights	uniform
//	ilrweights	blw.sqrt
//	factors	3
//	choice	var
//
// Parameters not in the file will have its default value.
func Read(name string) (*AP, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ap, err := read(f, name)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return ap, nil
}

func read(r io.Reader, name string) (*AP, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
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

	ap := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		p := Param(strings.ToLower(strings.TrimSpace(row[fields["parameter"]])))
		f := "value"
		if err := ap.Set(p, row[fields[f]]); err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}
	}
	return ap, nil
}

// Set sets a parameter from a string value.
func (ap *AP) Set(p Param, v string) error {
	v = strings.TrimSpace(v)
	switch p {
	case MuTotal:
		f, err := parseFloat(v)
		if err != nil {
			return err
		}
		return ap.SetMuTotal(f)
	case Dispersion:
		f, err := parseFloat(v)
		if err != nil {
			return err
		}
		return ap.SetDispersion(f)
	case Scale:
		f, err := parseFloat(v)
		if err != nil {
			return err
		}
		return ap.SetScale(f)
	case Pseudocount:
		f, err := parseFloat(v)
		if err != nil {
			return err
		}
		return ap.SetPseudocount(f)
	case PartWeights:
		w, err := philr.ParsePartWeight(v)
		if err != nil {
			return err
		}
		ap.part = w
	case ILRWeights:
		w, err := philr.ParseILRWeight(v)
		if err != nil {
			return err
		}
		ap.ilr = w
	case Factors:
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		return ap.SetFactors(n)
	case Choice:
		c, err := phylofactor.ParseChoice(v)
		if err != nil {
			return err
		}
		ap.choice = c
	default:
		return fmt.Errorf("unknown parameter %q", p)
	}
	return nil
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid value %q", v)
	}
	return f, nil
}

// Value returns the value of a parameter
// as a string.
func (ap *AP) Value(p Param) string {
	switch p {
	case MuTotal:
		return strconv.FormatFloat(ap.abund.MuTotal, 'f', -1, 64)
	case Dispersion:
		return strconv.FormatFloat(ap.abund.Dispersion, 'f', -1, 64)
	case Scale:
		return strconv.FormatFloat(ap.abund.Scale, 'f', -1, 64)
	case Pseudocount:
		return strconv.FormatFloat(ap.pseudo, 'f', -1, 64)
	case PartWeights:
		return string(ap.part)
	case ILRWeights:
		return string(ap.ilr)
	case Factors:
		return strconv.Itoa(ap.factors)
	case Choice:
		return string(ap.choice)
	}
	return ""
}

// Abundance returns the parameters
// of the abundance simulation.
func (ap *AP) Abundance() abundance.Param {
	return ap.abund
}

// Choice returns the objective function
// used in phylofactorization.
func (ap *AP) Choice() phylofactor.Choice {
	return ap.choice
}

// Factors returns the number of factors
// of a phylofactorization.
func (ap *AP) Factors() int {
	return ap.factors
}

// ILRWeight returns the method used to weight
// balances in PhILR.
func (ap *AP) ILRWeight() philr.ILRWeight {
	return ap.ilr
}

// Name returns the file name of the parameters.
func (ap *AP) Name() string {
	return ap.name
}

// PartWeight returns the method used to weight
// parts in PhILR.
func (ap *AP) PartWeight() philr.PartWeight {
	return ap.part
}

// Pseudocount returns the value used
// to replace zero counts.
func (ap *AP) Pseudocount() float64 {
	return ap.pseudo
}

// SetDispersion sets the size parameter
// of the negative binomial distribution.
func (ap *AP) SetDispersion(d float64) error {
	if !(d > 0) {
		return fmt.Errorf("invalid dispersion value: %v", d)
	}
	ap.abund.Dispersion = d
	return nil
}

// SetFactors sets the number of factors.
func (ap *AP) SetFactors(n int) error {
	if n < 1 {
		return fmt.Errorf("invalid number of factors: %d", n)
	}
	ap.factors = n
	return nil
}

// SetMuTotal sets the expected number of counts
// in a sample.
func (ap *AP) SetMuTotal(mu float64) error {
	if mu < 0 {
		return fmt.Errorf("invalid total count: %v", mu)
	}
	ap.abund.MuTotal = mu
	return nil
}

// SetName sets the name of a parameter collection.
func (ap *AP) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	ap.name = name
}

// SetPseudocount sets the value used to replace
// zero counts.
func (ap *AP) SetPseudocount(v float64) error {
	if !(v > 0) {
		return fmt.Errorf("invalid pseudocount: %v", v)
	}
	ap.pseudo = v
	return nil
}

// SetScale sets the coefficient of the response
// of the abundance to the disturbance.
func (ap *AP) SetScale(s float64) error {
	ap.abund.Scale = s
	return nil
}

// Write writes a parameter collection into a file.
func (ap *AP) Write() (err error) {
	f, err := os.Create(ap.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# phylocomp analysis parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", ap.name, err)
	}

	for _, p := range Params() {
		row := []string{
			string(p),
			ap.Value(p),
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", ap.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", ap.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", ap.name, err)
	}
	return nil
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package abundance implements the simulation
// of sequence counts of a set of species
// in a set of samples,
// in which the relative abundance of each species
// responds to a trait value
// (for example, the gene copy number)
// scaled by the disturbance frequency of the sample.
package abundance

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Errors returned by the simulator.
var (
	// ErrInvalidInput is returned when the input values
	// are outside the domain of the model.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOverflow is returned when the expected abundance
	// can not be represented as a finite number.
	ErrOverflow = errors.New("numeric overflow")
)

// Default values of the simulation parameters.
const (
	DefMuTotal     = 10_000
	DefDispersion  = 1.0
	DefScale       = 3.0
	DefPseudocount = 0.65
)

// Param contains the parameters of the abundance simulation.
type Param struct {
	// MuTotal is the expected total number of sequence counts
	// of a sample.
	MuTotal float64

	// Dispersion is the size parameter
	// of the negative binomial distribution
	// used to draw the counts.
	Dispersion float64

	// Scale is the coefficient that multiplies
	// the product of the disturbance
	// and the logarithm of the trait.
	Scale float64
}

// DefaultParam returns the default parameters
// of the abundance simulation.
func DefaultParam() Param {
	return Param{
		MuTotal:    DefMuTotal,
		Dispersion: DefDispersion,
		Scale:      DefScale,
	}
}

func (p Param) validate() error {
	if p.MuTotal < 0 || math.IsNaN(p.MuTotal) || math.IsInf(p.MuTotal, 0) {
		return fmt.Errorf("%w: total count %v", ErrInvalidInput, p.MuTotal)
	}
	if !(p.Dispersion > 0) || math.IsInf(p.Dispersion, 0) {
		return fmt.Errorf("%w: dispersion %v", ErrInvalidInput, p.Dispersion)
	}
	if math.IsNaN(p.Scale) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: scale %v", ErrInvalidInput, p.Scale)
	}
	return nil
}

// Weights returns the relative abundance
// of each species in a sample
// with the given disturbance.
// The returned values sum to 1.
//
// Each trait value must be greater than 0.
func (p Param) Weights(disturbance float64, trait []float64) ([]float64, error) {
	if len(trait) == 0 {
		return nil, fmt.Errorf("%w: empty trait vector", ErrInvalidInput)
	}
	if math.IsNaN(disturbance) || math.IsInf(disturbance, 0) {
		return nil, fmt.Errorf("%w: disturbance %v", ErrInvalidInput, disturbance)
	}
	if math.IsNaN(p.Scale) || math.IsInf(p.Scale, 0) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidInput, p.Scale)
	}

	logMu := make([]float64, len(trait))
	for i, v := range trait {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: trait %d: value %v", ErrInvalidInput, i, v)
		}
		lm := p.Scale * disturbance * math.Log(v)
		if math.IsNaN(lm) || math.IsInf(lm, 0) {
			return nil, fmt.Errorf("%w: trait %d: log-mean %v", ErrOverflow, i, lm)
		}
		logMu[i] = lm
	}

	// log-sum-exp
	max := floats.Max(logMu)
	var sum float64
	w := make([]float64, len(logMu))
	for i, lm := range logMu {
		w[i] = math.Exp(lm - max)
		sum += w[i]
	}
	floats.Scale(1/sum, w)
	return w, nil
}

// Expected returns the expected counts
// of each species in a sample
// with the given disturbance.
func (p Param) Expected(disturbance float64, trait []float64) ([]float64, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	w, err := p.Weights(disturbance, trait)
	if err != nil {
		return nil, err
	}
	floats.Scale(p.MuTotal, w)
	for i, mu := range w {
		if math.IsNaN(mu) || math.IsInf(mu, 0) {
			return nil, fmt.Errorf("%w: trait %d: expected count %v", ErrOverflow, i, mu)
		}
	}
	return w, nil
}

// Simulate returns the simulated counts
// of each species in a sample
// with the given disturbance.
// Counts are drawn independently
// from a negative binomial distribution
// with the expected count as mean.
//
// The only source of randomness is src,
// so the same source state
// and the same input
// produce the same counts.
func (p Param) Simulate(src rand.Source, disturbance float64, trait []float64) ([]int, error) {
	mu, err := p.Expected(disturbance, trait)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(mu))
	for i, m := range mu {
		c, err := negBin(src, p.Dispersion, m)
		if err != nil {
			return nil, fmt.Errorf("trait %d: %w", i, err)
		}
		counts[i] = c
	}
	return counts, nil
}

// maxCount is the largest count
// that can be stored as an int.
const maxCount = float64(math.MaxInt)

// NegBin draws a value from a negative binomial distribution
// as a gamma-poisson mixture.
func negBin(src rand.Source, size, mu float64) (int, error) {
	if mu == 0 {
		return 0, nil
	}
	if mu >= maxCount {
		return 0, fmt.Errorf("%w: expected count %v", ErrOverflow, mu)
	}
	g := distuv.Gamma{
		Alpha: size,
		Beta:  size / mu,
		Src:   src,
	}
	lambda := g.Rand()
	if lambda == 0 {
		return 0, nil
	}
	if lambda >= maxCount {
		return 0, fmt.Errorf("%w: poisson rate %v", ErrOverflow, lambda)
	}
	pd := distuv.Poisson{
		Lambda: lambda,
		Src:    src,
	}
	v := pd.Rand()
	if v >= maxCount {
		return 0, fmt.Errorf("%w: count %v", ErrOverflow, v)
	}
	return int(v), nil
}

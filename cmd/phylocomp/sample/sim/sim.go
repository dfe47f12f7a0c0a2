// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sim implements a command to simulate
// the disturbance frequency of a set of samples.
package sim

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/internal/cli"
	"github.com/js-arias/phylocomp/project"
	"github.com/js-arias/phylocomp/sample"
)

var Command = &command.Command{
	Usage: `sim [-f|--file <sample-file>]
	[-n|--samples <number>] [--rate <value>]
	[--seed <value>] [--log <level>]
	<project-file>`,
	Short: "simulate samples",
	Long: `
Command sim creates a set of samples with a random disturbance frequency, and
adds them to a PhyloComp project.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

The disturbance of each sample is the logarithm of a value drawn from an
exponential distribution. The flag --rate sets the rate of the exponential
distribution (default 1). Samples are sorted by its disturbance and named "s1",
"s2", and so on.

By default, 40 samples will be created. Use the flag --samples, or -n, to
define a different number of samples.

The flag --seed sets the seed of the random number generator. If it is zero (the
default) a seed based on the current time is used. The used seed is logged at
the "info" level. The flag --log sets the logging level (by default "warn").

By default the samples will be stored in the sample file currently defined for
the project. If the project does not have a sample file, a new one will be
created with the name 'samples.tab'. A different file name can be defined with
the flag --file or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleFile string
var logLevel string
var numSamples int
var rate float64
var seed uint64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleFile, "file", "", "")
	c.Flags().StringVar(&sampleFile, "f", "", "")
	c.Flags().StringVar(&logLevel, "log", cli.DefLogLevel, "")
	c.Flags().IntVar(&numSamples, "samples", 40, "")
	c.Flags().IntVar(&numSamples, "n", 40, "")
	c.Flags().Float64Var(&rate, "rate", 1, "")
	c.Flags().Uint64Var(&seed, "seed", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	log, err := cli.Logger(c.Stderr(), logLevel)
	if err != nil {
		return c.UsageError(err.Error())
	}

	p, err := cli.OpenProject(args[0])
	if err != nil {
		return err
	}

	src, s := cli.Source(seed)
	log.WithField("seed", s).Info("random source")

	smp, err := sample.Simulate(numSamples, rate, src)
	if err != nil {
		return c.UsageError(err.Error())
	}
	log.WithField("samples", len(smp)).Info("samples simulated")

	if sampleFile == "" {
		sampleFile = p.Path(project.Samples)
		if sampleFile == "" {
			sampleFile = "samples.tab"
		}
	}
	if err := cli.WriteFile(sampleFile, smp.TSV); err != nil {
		return err
	}
	p.Add(project.Samples, sampleFile)
	if err := p.Write(); err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	return nil
}

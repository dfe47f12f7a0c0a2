// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sim implements a command to simulate
// the evolution of a trait
// on the tree of a PhyloComp project.
package sim

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/internal/cli"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/project"
	"github.com/js-arias/phylocomp/trait"
)

var Command = &command.Command{
	Usage: `sim [-f|--file <trait-file>] [--tree <tree-name>]
	[--root <value>] [--sigma <value>] [--continuous]
	[--seed <value>] [--log <level>]
	<project-file>`,
	Short: "simulate a trait on a tree",
	Long: `
Command sim simulates the evolution of a positive trait (for example, the copy
number of a gene) on the tree of a PhyloComp project, and stores the values at
the terminals as the traits of the project.

The argument of the command is the name of the project file.

If the project has more than one tree, the flag --tree must be used to select
the tree.

The trait evolves as a brownian motion of the logarithm of the trait. The flag
--root sets the trait value at the root (default 2). The flag --sigma sets the
standard deviation of the change of the logarithm of the trait for each square
root of million years (default 0.2).

By default, values at the terminals are rounded to an integer greater than or
equal to one, as in gene copy numbers. Use the flag --continuous to keep the
simulated values.

The flag --seed sets the seed of the random number generator. If it is zero (the
default) a seed based on the current time is used. The used seed is logged at
the "info" level. The flag --log sets the logging level (by default "warn").

By default the traits will be stored in the trait file currently defined for
the project. If the project does not have a trait file, a new one will be
created with the name 'traits.tab'. A different file name can be defined with
the flag --file or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var traitFile string
var treeName string
var logLevel string
var rootVal float64
var sigma float64
var continuous bool
var seed uint64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&traitFile, "file", "", "")
	c.Flags().StringVar(&traitFile, "f", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&logLevel, "log", cli.DefLogLevel, "")
	c.Flags().Float64Var(&rootVal, "root", 2, "")
	c.Flags().Float64Var(&sigma, "sigma", 0.2, "")
	c.Flags().BoolVar(&continuous, "continuous", false, "")
	c.Flags().Uint64Var(&seed, "seed", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if !(rootVal > 0) {
		return c.UsageError("flag --root: expecting a positive value")
	}
	if sigma < 0 {
		return c.UsageError("flag --sigma: expecting a non-negative value")
	}
	log, err := cli.Logger(c.Stderr(), logLevel)
	if err != nil {
		return c.UsageError(err.Error())
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Tree(treeName)
	if err != nil {
		return err
	}

	src, s := cli.Source(seed)
	log.WithField("seed", s).Info("random source")

	d := trait.Evolve(phylo.New(t), trait.Param{
		Root:     rootVal,
		Sigma:    sigma,
		Discrete: !continuous,
	}, src)
	log.WithField("tree", t.Name()).WithField("taxa", len(d.Taxa())).Info("trait simulated")

	if traitFile == "" {
		traitFile = p.Path(project.Traits)
		if traitFile == "" {
			traitFile = "traits.tab"
		}
	}
	if err := cli.WriteFile(traitFile, d.TSV); err != nil {
		return err
	}
	p.Add(project.Traits, traitFile)
	if err := p.Write(); err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	return nil
}

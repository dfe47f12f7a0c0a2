// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sim implements a command to simulate
// an abundance table.
package sim

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/internal/cli"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/project"
)

var Command = &command.Command{
	Usage: `sim [-f|--file <abundance-file>] [--tree <tree-name>]
	[--raw] [--seed <value>] [--log <level>]
	<project-file>`,
	Short: "simulate an abundance table",
	Long: `
Command sim simulates the counts of each species of a tree in each sample of a
PhyloComp project.

The argument of the command is the name of the project file. The project must
have a tree, trait values for every terminal of the tree, and samples.

If the project has more than one tree, the flag --tree must be used to select
the tree.

For each sample, the expected relative abundance of a species is proportional
to

	exp(scale * disturbance * ln(trait))

and the expected total count of the sample is the "mutotal" parameter. Counts
are drawn from a negative binomial distribution with the expected count as the
mean, and the "dispersion" parameter as its size. The parameters "scale",
"mutotal", and "dispersion" are read from the parameters file of the project
(see 'phylocomp help param-files').

By default, zero counts are replaced with the "pseudocount" parameter (0.65 by
default) as required by log-ratio analyses. Use the flag --raw to keep the
zero counts.

The flag --seed sets the seed of the random number generator. If it is zero (the
default) a seed based on the current time is used. The used seed is logged at
the "info" level. The flag --log sets the logging level (by default "warn").

By default the table will be stored in the abundance file currently defined
for the project. If the project does not have an abundance file, a new one
will be created with the name 'abundance.tab'. A different file name can be
defined with the flag --file or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var abundFile string
var treeName string
var logLevel string
var rawFlag bool
var seed uint64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&abundFile, "file", "", "")
	c.Flags().StringVar(&abundFile, "f", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&logLevel, "log", cli.DefLogLevel, "")
	c.Flags().BoolVar(&rawFlag, "raw", false, "")
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

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Tree(treeName)
	if err != nil {
		return err
	}
	species := phylo.New(t).Tips()

	td, err := p.Traits()
	if err != nil {
		return err
	}
	traits, err := td.Values(species)
	if err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}

	smp, err := p.Samples()
	if err != nil {
		return err
	}
	ap, err := p.Params()
	if err != nil {
		return err
	}

	src, s := cli.Source(seed)
	log.WithField("seed", s).Info("random source")

	tab, err := ap.Abundance().Table(src, species, traits, smp.Names(), smp.Disturbance())
	if err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	log.WithField("species", len(species)).WithField("samples", len(smp)).Info("abundance simulated")

	if !rawFlag {
		n, err := tab.Pseudocount(ap.Pseudocount())
		if err != nil {
			return err
		}
		log.WithField("cells", n).WithField("pseudocount", ap.Pseudocount()).Info("zero counts replaced")
	}

	if abundFile == "" {
		abundFile = p.Path(project.Abundance)
		if abundFile == "" {
			abundFile = "abundance.tab"
		}
	}
	if err := cli.WriteFile(abundFile, tab.TSV); err != nil {
		return err
	}
	p.Add(project.Abundance, abundFile)
	if err := p.Write(); err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	return nil
}

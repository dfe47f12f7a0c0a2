// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package factor implements a command to perform
// a phylofactorization of an abundance table.
package factor

import (
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/internal/cli"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/phylofactor"
	"github.com/js-arias/phylocomp/project"
	"github.com/sirupsen/logrus"
)

var Command = &command.Command{
	Usage: `factor [-f|--file <factor-file>] [--balances <file>]
	[--plot <prefix>] [--tree <tree-name>]
	[--factors <number>] [--choice <value>] [--cpu <number>]
	[--log <level>] <project-file>`,
	Short: "perform a phylofactorization",
	Long: `
Command factor reads the abundance table of a PhyloComp project, and performs
a phylofactorization of the table, using the disturbance of the samples as the
covariate.

The argument of the command is the name of the project file. The project must
have a tree, an abundance table with the terminals of the tree as species, and
the samples of the table. If the project has more than one tree, the flag
--tree must be used to select the tree.

Phylofactorization is a greedy algorithm. At the start, all terminals are in a
single bin. At each step, every edge of the tree that splits a bin into two
groups is evaluated: the isometric log-ratio balance between both groups is
regressed on the covariate, and the edge with the best objective is selected
as a factor, and the bin is split. Multifurcating trees are accepted.

The number of factors and the objective function are taken from the
parameters file of the project (see 'phylocomp help param-files'). Use the
flag --factors to set a different number of factors, and the flag --choice to
set a different objective: either "var" (explained variance) or "F" (F
statistic).

Log-ratios require all counts to be greater than zero. If the table has zero
counts, they will be replaced with the "pseudocount" parameter and a warning
will be logged.

By default, all available CPUs are used to evaluate the edges. Use the flag
--cpu to set a different number of processors. The result does not depend on
the number of processors.

The factors are stored in a tab-delimited file with the columns "factor",
"edge", "group", "complement", "alpha", "beta", "r2", "F", "pvalue", and
"expvar". By default the file is the factors file currently defined in the
project, or 'factors.tab'. A different file name can be defined with the flag
--file or -f.

If the flag --balances is defined, the balance of each factor at each sample
will be written in the indicated file.

If the flag --plot is defined, a scatter plot of the balance of each factor
against the disturbance, with its regression line, will be drawn in a PNG
file named with the indicated prefix and the factor number.

The flag --log sets the logging level (by default "warn"). At the "info"
level, each factor is logged when found.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var factorFile string
var balFile string
var plotPrefix string
var treeName string
var choiceFlag string
var logLevel string
var numFactors int
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&factorFile, "file", "", "")
	c.Flags().StringVar(&factorFile, "f", "", "")
	c.Flags().StringVar(&balFile, "balances", "", "")
	c.Flags().StringVar(&plotPrefix, "plot", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&choiceFlag, "choice", "", "")
	c.Flags().StringVar(&logLevel, "log", cli.DefLogLevel, "")
	c.Flags().IntVar(&numFactors, "factors", 0, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
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
	ap, err := p.Params()
	if err != nil {
		return err
	}
	fp := phylofactor.Param{
		Factors: ap.Factors(),
		Choice:  ap.Choice(),
		Workers: numCPU,
	}
	if numFactors > 0 {
		fp.Factors = numFactors
	}
	if choiceFlag != "" {
		fp.Choice, err = phylofactor.ParseChoice(choiceFlag)
		if err != nil {
			return c.UsageError(fmt.Sprintf("flag --choice: %v", err))
		}
	}

	t, err := p.Tree(treeName)
	if err != nil {
		return err
	}
	tab, err := p.Abundance()
	if err != nil {
		return err
	}
	if !tab.IsPositive() {
		n, err := tab.Pseudocount(ap.Pseudocount())
		if err != nil {
			return err
		}
		log.WithField("cells", n).WithField("pseudocount", ap.Pseudocount()).Warn("zero counts replaced")
	}
	smp, err := p.Samples()
	if err != nil {
		return err
	}
	x, err := smp.Lookup(tab.Samples())
	if err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}

	res, err := phylofactor.Factorize(tab, phylo.New(t), x, fp)
	if err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	for i, f := range res.Factors() {
		log.WithFields(logrus.Fields{
			"factor": i + 1,
			"edge":   f.Edge,
			"group":  strings.Join(f.Group, ","),
			"beta":   f.Fit.Beta,
			"expvar": f.ExpVar,
		}).Info("factor found")
	}
	if len(res.Factors()) < fp.Factors {
		log.WithField("factors", len(res.Factors())).Warn("no more edges to split")
	}

	if factorFile == "" {
		factorFile = p.Path(project.Factors)
		if factorFile == "" {
			factorFile = "factors.tab"
		}
	}
	if err := cli.WriteFile(factorFile, res.TSV); err != nil {
		return err
	}
	if balFile != "" {
		if err := cli.WriteFile(balFile, res.BalanceTSV); err != nil {
			return err
		}
	}
	if plotPrefix != "" {
		if err := plotFactors(res, plotPrefix); err != nil {
			return err
		}
	}

	p.Add(project.Factors, factorFile)
	if err := p.Write(); err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	return nil
}

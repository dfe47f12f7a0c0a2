// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package philr implements a command to transform
// an abundance table with the PhILR transform.
package philr

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/internal/cli"
	"github.com/js-arias/phylocomp/philr"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/project"
	"github.com/sirupsen/logrus"
)

var Command = &command.Command{
	Usage: `philr [-f|--file <balance-file>] [--basis <file>]
	[--tree <tree-name>] [--part <value>] [--ilr <value>]
	[--log <level>] <project-file>`,
	Short: "transform abundances with PhILR",
	Long: `
Command philr reads the abundance table of a PhyloComp project, and transforms
each sample using the phylogenetic isometric log-ratio transform (PhILR).

The argument of the command is the name of the project file. The project must
have a tree and an abundance table, with the terminals of the tree as the
species of the table. The tree must be fully dichotomous.

If the project has more than one tree, the flag --tree must be used to select
the tree.

Each internal node of the tree defines a balance, that contrasts the
terminals of its first child against the terminals of its second child. The
weights of the parts, and the weights of the balances, are taken from the
parameters file of the project (see 'phylocomp help param-files'). The flags
--part and --ilr can be used to override the values of the project.

Log-ratios require all counts to be greater than zero. If the table has zero
counts, they will be replaced with the "pseudocount" parameter and a warning
will be logged. The flag --log sets the logging level (by default "warn").

The balances of each sample are stored in a tab-delimited file with the
columns "sample", "balance", and "value". Balances are named after the node
that defines it, for example "n12". By default the file is the balances file
currently defined in the project, or 'balances.tab'. A different file name can
be defined with the flag --file or -f.

If the flag --basis is defined, the definition of each balance (its node, its
weight and the terminals in each side) will be written in the indicated file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var balFile string
var basisFile string
var treeName string
var partFlag string
var ilrFlag string
var logLevel string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&balFile, "file", "", "")
	c.Flags().StringVar(&balFile, "f", "", "")
	c.Flags().StringVar(&basisFile, "basis", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&partFlag, "part", "", "")
	c.Flags().StringVar(&ilrFlag, "ilr", "", "")
	c.Flags().StringVar(&logLevel, "log", cli.DefLogLevel, "")
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
	part := ap.PartWeight()
	if partFlag != "" {
		part, err = philr.ParsePartWeight(partFlag)
		if err != nil {
			return c.UsageError(fmt.Sprintf("flag --part: %v", err))
		}
	}
	ilr := ap.ILRWeight()
	if ilrFlag != "" {
		ilr, err = philr.ParseILRWeight(ilrFlag)
		if err != nil {
			return c.UsageError(fmt.Sprintf("flag --ilr: %v", err))
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

	res, err := philr.Transform(tab, phylo.New(t), part, ilr)
	if err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	log.WithFields(logrus.Fields{
		"tree":     t.Name(),
		"balances": len(res.Basis().Balances()),
		"samples":  len(res.Samples()),
		"part":     part,
		"ilr":      ilr,
	}).Info("PhILR transform")

	if balFile == "" {
		balFile = p.Path(project.Balances)
		if balFile == "" {
			balFile = "balances.tab"
		}
	}
	if err := cli.WriteFile(balFile, res.TSV); err != nil {
		return err
	}
	if basisFile != "" {
		if err := cli.WriteFile(basisFile, res.BalancesTSV); err != nil {
			return err
		}
	}

	p.Add(project.Balances, balFile)
	if err := p.Write(); err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	return nil
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sim implements a command to simulate
// a phylogenetic tree
// and add it to a PhyloComp project.
package sim

import (
	"fmt"
	"math"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/internal/cli"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/project"
	"github.com/js-arias/timetree"
	"github.com/js-arias/timetree/simulate"
)

var Command = &command.Command{
	Usage: `sim [-f|--file <tree-file>] [--name <tree-name>]
	[--terms <number>] [--age <value>] [--log <level>]
	<project-file>`,
	Short: "simulate a phylogenetic tree",
	Long: `
Command sim creates a random time calibrated tree, using a Yule (pure birth)
process, and adds it to a PhyloComp project.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

By default, the tree will have 50 terminals. Use the flag --terms to define a
different number of terminals; at least three terminals are required.

By default, the root age will be 100 million years. Use the flag --age to set a
different age, in million years.

The speciation rate is defined as spRate = (ln(terms) - ln(2)) / rootAge, and
trees are simulated until a tree with the requested number of terminals is
found.

By default the tree will be named "sim". Use the flag --name to define a
different name. If a tree with that name is already in the project, the
command will fail.

By default the tree will be stored in the tree file currently defined for the
project. If the project does not have a tree file, a new one will be created
with the name 'trees.tab'. A different tree file name can be defined using the
flag --file, or -f.

The flag --log sets the logging level (by default "warn").
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var treeName string
var logLevel string
var numTerms int
var rootAge float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&treeName, "name", "sim", "")
	c.Flags().StringVar(&logLevel, "log", cli.DefLogLevel, "")
	c.Flags().IntVar(&numTerms, "terms", 50, "")
	c.Flags().Float64Var(&rootAge, "age", 100, "")
}

// maxTries is the maximum number of simulated trees
// before giving up.
const maxTries = 10_000

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if _, err := speciationRate(numTerms, rootAge); err != nil {
		return c.UsageError(err.Error())
	}
	log, err := cli.Logger(c.Stderr(), logLevel)
	if err != nil {
		return c.UsageError(err.Error())
	}

	p, err := cli.OpenProject(args[0])
	if err != nil {
		return err
	}

	tc := timetree.NewCollection()
	if tf := p.Path(project.Trees); tf != "" {
		tc, err = p.Trees()
		if err != nil {
			return err
		}
	}
	if tc.Tree(treeName) != nil {
		return fmt.Errorf("tree %q already in project %q", treeName, args[0])
	}

	t, err := yule()
	if err != nil {
		return err
	}
	if err := tc.Add(t); err != nil {
		return err
	}
	log.WithField("tree", t.Name()).WithField("terms", len(t.Terms())).Info("tree simulated")

	if treeFile == "" {
		treeFile = p.Path(project.Trees)
		if treeFile == "" {
			treeFile = "trees.tab"
		}
	}
	if err := cli.WriteFile(treeFile, tc.TSV); err != nil {
		return err
	}
	p.Add(project.Trees, treeFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func yule() (*timetree.Tree, error) {
	root := int64(rootAge * phylo.MillionYears)
	spRate, err := speciationRate(numTerms, rootAge)
	if err != nil {
		return nil, err
	}
	for i := 0; i < maxTries; i++ {
		t, _ := simulate.Yule(treeName, spRate, root, numTerms*2)
		if len(t.Terms()) != numTerms {
			continue
		}
		t.Format()
		return t, nil
	}
	return nil, fmt.Errorf("unable to simulate a tree with %d terminals", numTerms)
}

// speciationRate returns the rate of a Yule process
// that is expected to produce the given number of terminals
// at the given age (in million years).
func speciationRate(terms int, age float64) (float64, error) {
	if terms < 3 {
		return 0, fmt.Errorf("flag --terms: expecting at least three terminals")
	}
	if !(age > 0) || math.IsInf(age, 0) {
		return 0, fmt.Errorf("flag --age: expecting a positive age")
	}
	return (math.Log(float64(terms)) - math.Log(2)) / age, nil
}

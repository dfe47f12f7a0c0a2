// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of trees in a PhyloComp project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/project"
)

var Command = &command.Command{
	Usage: "list [--count] <project-file>",
	Short: "print a list of the trees in a project",
	Long: `
Command list reads the trees from a PhyloComp project and print the tree names
in the standard output.

The argument of the command is the name of the project file.

If the flag --count is defined, the number of terminals of each tree, its root
age (in million years), and whether the tree is fully dichotomous (a
requirement for the PhILR transform), will be printed along the name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var countFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&countFlag, "count", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tc, err := p.Trees()
	if err != nil {
		return err
	}

	ls := tc.Names()
	for _, tn := range ls {
		if !countFlag {
			fmt.Fprintf(c.Stdout(), "%s\n", tn)
			continue
		}
		t := tc.Tree(tn)
		pt := phylo.New(t)
		age := float64(t.Age(t.Root())) / phylo.MillionYears
		fmt.Fprintf(c.Stdout(), "%s\t%d\t%.6f\t%v\n", tn, len(pt.Tips()), age, pt.IsBinary())
	}
	return nil
}

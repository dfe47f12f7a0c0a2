// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the trait values of a PhyloComp project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/project"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: "list [--stats] <project-file>",
	Short: "print the trait values of a project",
	Long: `
Command list reads the traits of a PhyloComp project and prints the name of
each taxon and its trait value in the standard output.

The argument of the command is the name of the project file.

If the flag --stats is defined, instead of the values, it will print the
number of taxa, and the minimum, maximum, mean, and standard deviation of the
trait values.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var statsFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&statsFlag, "stats", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	d, err := p.Traits()
	if err != nil {
		return err
	}

	taxa := d.Taxa()
	if !statsFlag {
		for _, tax := range taxa {
			v, _ := d.Value(tax)
			fmt.Fprintf(c.Stdout(), "%s\t%g\n", tax, v)
		}
		return nil
	}

	vals, err := d.Values(taxa)
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return nil
	}
	min, max := vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean, sd := stat.MeanStdDev(vals, nil)
	fmt.Fprintf(c.Stdout(), "taxa\t%d\nmin\t%g\nmax\t%g\nmean\t%.6f\nsd\t%.6f\n", len(vals), min, max, mean, sd)
	return nil
}

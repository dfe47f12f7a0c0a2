// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the samples of a PhyloComp project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/project"
)

var Command = &command.Command{
	Usage: "list [--sort] <project-file>",
	Short: "print the samples of a project",
	Long: `
Command list reads the samples of a PhyloComp project and prints the name of
each sample and its disturbance frequency in the standard output.

The argument of the command is the name of the project file.

By default, samples are printed in the order of the file. If the flag --sort is
defined, samples will be sorted by its disturbance.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sortFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&sortFlag, "sort", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	s, err := p.Samples()
	if err != nil {
		return err
	}
	if sortFlag {
		s.Sort()
	}

	for _, v := range s {
		fmt.Fprintf(c.Stdout(), "%s\t%.6f\n", v.Name, v.Disturbance)
	}
	return nil
}

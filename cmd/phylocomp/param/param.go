// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements a command to manage
// the analysis parameters of a PhyloComp project.
package param

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/param"
	"github.com/js-arias/phylocomp/project"
)

var Command = &command.Command{
	Usage: `param [--add <param-file>] [--file <file-name>]
	[--mutotal <value>] [--dispersion <value>] [--scale <value>]
	[--pseudocount <value>]
	[--part <value>] [--ilr <value>]
	[--factors <value>] [--choice <value>]
	<project-file>`,
	Short: "manage analysis parameters",
	Long: `
Command param manages the parameters used for the simulation and analysis of
abundance data in a PhyloComp project.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters. If the
project does not have a parameters file, the default values are printed.

If the flag --add is defined, it will use the indicated file for the analysis
parameters.

By default, any change on the parameters will be stored in the current
parameters file. If the project does not have a parameters file, a new one
will be created with the name 'params.tab'. Use the flag --file to define a
new parameters file.

The parameters of the abundance simulation are:

	--mutotal      expected total count of a sample (default 10000)
	--dispersion   size of the negative binomial distribution (default 1)
	--scale        coefficient of the response to disturbance (default 3)
	--pseudocount  value used to replace zero counts (default 0.65)

The parameters of the PhILR transform are:

	--part  the part weights, one of "uniform" (the default), "gm.counts"
	        (geometric mean of the counts), "anorm" (Aitchison norm of the
	        clr part), or "anorm.x.gm.counts" (product of both).
	--ilr   the balance weights, one of "uniform", "blw" (sum of the branch
	        lengths of the children), "blw.sqrt" (the default; square root of
	        the blw), or "mean.descendants" (sum of the mean distance to the
	        terminals of each child).

The parameters of the phylofactorization are:

	--factors  number of factors (default 3)
	--choice   objective function, either "var" (the default; explained
	           variance) or "F" (F statistic).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFile string
var paramFile string

// values of each parameter
// as set in the command line
var values = map[param.Param]*string{}

var flagNames = map[param.Param]string{
	param.MuTotal:     "mutotal",
	param.Dispersion:  "dispersion",
	param.Scale:       "scale",
	param.Pseudocount: "pseudocount",
	param.PartWeights: "part",
	param.ILRWeights:  "ilr",
	param.Factors:     "factors",
	param.Choice:      "choice",
}

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFile, "add", "", "")
	c.Flags().StringVar(&paramFile, "file", "", "")
	for _, p := range param.Params() {
		v := new(string)
		values[p] = v
		c.Flags().StringVar(v, flagNames[p], "", "")
	}
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if addFile != "" {
		if _, err := param.Read(addFile); err != nil {
			return err
		}
		p.Add(project.Params, addFile)
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}

	ap, err := p.Params()
	if err != nil {
		return err
	}
	if paramFile != "" {
		ap.SetName(paramFile)
	}

	ed := false
	for _, pm := range param.Params() {
		v := *values[pm]
		if v == "" {
			continue
		}
		if err := ap.Set(pm, v); err != nil {
			return c.UsageError(fmt.Sprintf("flag --%s: %v", flagNames[pm], err))
		}
		ed = true
	}

	if p.Path(project.Params) != ap.Name() && (ed || paramFile != "") {
		if err := ap.Write(); err != nil {
			return err
		}
		p.Add(project.Params, ap.Name())
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}
	if ed {
		if err := ap.Write(); err != nil {
			return err
		}
		return nil
	}

	printParams(c.Stdout(), ap)
	return nil
}

func printParams(w io.Writer, ap *param.AP) {
	fmt.Fprintf(w, "file:\t%s\n", ap.Name())
	for _, p := range param.Params() {
		fmt.Fprintf(w, "%s:\t%s\n", p, ap.Value(p))
	}
}

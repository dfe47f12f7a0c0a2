// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyloComp is a tool for the simulation
// and phylogenetic compositional analysis
// of microbiome abundance data.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/abund"
	"github.com/js-arias/phylocomp/cmd/phylocomp/factor"
	"github.com/js-arias/phylocomp/cmd/phylocomp/param"
	"github.com/js-arias/phylocomp/cmd/phylocomp/philr"
	"github.com/js-arias/phylocomp/cmd/phylocomp/sample"
	"github.com/js-arias/phylocomp/cmd/phylocomp/trait"
	"github.com/js-arias/phylocomp/cmd/phylocomp/tree"
)

var app = &command.Command{
	Usage: "phylocomp <command> [<argument>...]",
	Short: "a tool for phylogenetic compositional analysis",
}

func init() {
	app.Add(abund.Command)
	app.Add(factor.Command)
	app.Add(param.Command)
	app.Add(philr.Command)
	app.Add(sample.Command)
	app.Add(trait.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}

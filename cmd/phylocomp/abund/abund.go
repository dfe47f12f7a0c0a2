// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package abund is a metapackage for commands
// that dealt with abundance tables.
package abund

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/abund/heatmap"
	"github.com/js-arias/phylocomp/cmd/phylocomp/abund/sim"
)

var Command = &command.Command{
	Usage: "abund <command> [<argument>...]",
	Short: "commands for abundance tables",
}

func init() {
	Command.Add(heatmap.Command)
	Command.Add(sim.Command)
}

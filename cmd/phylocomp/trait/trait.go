// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trait is a metapackage for commands
// that dealt with species traits.
package trait

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/trait/list"
	"github.com/js-arias/phylocomp/cmd/phylocomp/trait/sim"
)

var Command = &command.Command{
	Usage: "trait <command> [<argument>...]",
	Short: "commands for species traits",
}

func init() {
	Command.Add(list.Command)
	Command.Add(sim.Command)
}

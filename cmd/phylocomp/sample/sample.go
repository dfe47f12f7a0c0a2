// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sample is a metapackage for commands
// that dealt with samples.
package sample

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/cmd/phylocomp/sample/list"
	"github.com/js-arias/phylocomp/cmd/phylocomp/sample/sim"
)

var Command = &command.Command{
	Usage: "sample <command> [<argument>...]",
	Short: "commands for samples and its disturbance frequencies",
}

func init() {
	Command.Add(list.Command)
	Command.Add(sim.Command)
}

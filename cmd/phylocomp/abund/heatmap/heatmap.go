// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package heatmap implements a command to draw
// an abundance table as a heat map.
package heatmap

import (
	"fmt"
	"image/color"
	"math"

	"github.com/js-arias/blind"
	"github.com/js-arias/command"
	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/cmd/phylocomp/internal/cli"
	"github.com/js-arias/phylocomp/phylo"
	"github.com/js-arias/phylocomp/project"
	"github.com/js-arias/phylocomp/sample"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `heatmap [-o|--output <file>] [--tree <tree-name>]
	[--colors <number>] [--width <value>] [--height <value>]
	[--log <level>] <project-file>`,
	Short: "draw an abundance table as a heat map",
	Long: `
Command heatmap reads the abundance table of a PhyloComp project, and draws the
logarithm of the counts as a heat map.

The argument of the command is the name of the project file.

Species (rows) are ordered as the terminals of the tree of the project, from
top to bottom, so closely related species are drawn together. If the project
has more than one tree, the flag --tree must be used to select the tree.
Samples (columns) are sorted by its disturbance, from left to right.

Zero counts are replaced by the "pseudocount" parameter of the project before
taking the logarithm.

Colors are taken from the iridescent color scheme of Paul Tol. By default 64
color levels are used; the flag --colors sets a different number of levels.

By default the image will be saved as "heatmap.png". Use the flag --output, or
-o, to define a different file name; the file extension defines the image
format. The flags --width and --height set the size of the image, in inches
(by default 8 by 6 inches).

The flag --log sets the logging level (by default "warn").
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var treeName string
var logLevel string
var numColors int
var width float64
var height float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "heatmap.png", "")
	c.Flags().StringVar(&output, "o", "heatmap.png", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&logLevel, "log", cli.DefLogLevel, "")
	c.Flags().IntVar(&numColors, "colors", 64, "")
	c.Flags().Float64Var(&width, "width", 8, "")
	c.Flags().Float64Var(&height, "height", 6, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if numColors < 2 {
		return c.UsageError("flag --colors: expecting at least two colors")
	}
	log, err := cli.Logger(c.Stderr(), logLevel)
	if err != nil {
		return c.UsageError(err.Error())
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Tree(treeName)
	if err != nil {
		return err
	}
	tab, err := p.Abundance()
	if err != nil {
		return err
	}
	tab, err = tab.Reorder(phylo.New(t).Tips())
	if err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}
	smp, err := p.Samples()
	if err != nil {
		return err
	}
	ap, err := p.Params()
	if err != nil {
		return err
	}
	n, err := tab.Pseudocount(ap.Pseudocount())
	if err != nil {
		return err
	}
	if n > 0 {
		log.WithField("cells", n).Info("zero counts replaced")
	}

	g, err := newGrid(tab, smp)
	if err != nil {
		return fmt.Errorf("on project %q: %v", args[0], err)
	}

	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("%s: log abundance", t.Name())
	plt.X.Label.Text = "samples (by disturbance)"
	plt.Y.Label.Text = "species (tree order)"
	plt.Add(plotter.NewHeatMap(g, newPalette(numColors)))

	if err := plt.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, output); err != nil {
		return err
	}
	log.WithField("file", output).Info("heat map saved")
	return nil
}

// A grid is an abundance table
// that implements the plotter.GridXYZ interface.
// Columns are samples,
// and rows are species,
// with the first species at the top.
type grid struct {
	vals [][]float64 // species x samples
}

func newGrid(tab *abundance.Table, smp sample.Samples) (*grid, error) {
	sorted := make(sample.Samples, len(smp))
	copy(sorted, smp)
	sorted.Sort()

	inTab := make(map[string]bool, len(tab.Samples()))
	for _, s := range tab.Samples() {
		inTab[s] = true
	}

	species := tab.Species()
	g := &grid{vals: make([][]float64, len(species))}
	for i, sp := range species {
		row := make([]float64, 0, len(sorted))
		for _, s := range sorted {
			if !inTab[s.Name] {
				continue
			}
			row = append(row, math.Log(tab.At(sp, s.Name)))
		}
		g.vals[i] = row
	}
	if len(g.vals) == 0 || len(g.vals[0]) == 0 {
		return nil, fmt.Errorf("no samples of the table found in sample list")
	}
	return g, nil
}

// Dims implements the plotter.GridXYZ interface.
func (g *grid) Dims() (c, r int) {
	return len(g.vals[0]), len(g.vals)
}

// Z implements the plotter.GridXYZ interface.
func (g *grid) Z(c, r int) float64 {
	return g.vals[len(g.vals)-1-r][c]
}

// X implements the plotter.GridXYZ interface.
func (g *grid) X(c int) float64 {
	return float64(c)
}

// Y implements the plotter.GridXYZ interface.
func (g *grid) Y(r int) float64 {
	return float64(r)
}

// iridescent is a palette.Palette
// with the iridescent color scheme of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type iridescent []color.Color

func newPalette(n int) iridescent {
	p := make(iridescent, n)
	for i := range p {
		p[i] = blind.Sequential(blind.Iridescent, float64(i)/float64(n-1))
	}
	return p
}

// Colors implements the palette.Palette interface.
func (p iridescent) Colors() []color.Color {
	return p
}

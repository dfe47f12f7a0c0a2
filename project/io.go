// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/phylocomp/abundance"
	"github.com/js-arias/phylocomp/param"
	"github.com/js-arias/phylocomp/sample"
	"github.com/js-arias/phylocomp/trait"
	"github.com/js-arias/timetree"
)

// Abundance reads an abundance table
// as defined in a project.
func (p *Project) Abundance() (*abundance.Table, error) {
	name := p.Path(Abundance)
	if name == "" {
		return nil, fmt.Errorf("abundance table not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tab, err := abundance.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return tab, nil
}

// Params reads the analysis parameters
// as defined in a project.
// If no parameter file is defined,
// it returns the default parameters.
func (p *Project) Params() (*param.AP, error) {
	name := p.Path(Params)
	if name == "" {
		return param.New("params.tab"), nil
	}
	return param.Read(name)
}

// Samples reads the samples
// as defined in a project.
func (p *Project) Samples() (sample.Samples, error) {
	name := p.Path(Samples)
	if name == "" {
		return nil, fmt.Errorf("samples not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := sample.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return s, nil
}

// Traits reads the trait values
// as defined in a project.
func (p *Project) Traits() (*trait.Data, error) {
	name := p.Path(Traits)
	if name == "" {
		return nil, fmt.Errorf("traits not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := trait.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return d, nil
}

// Trees reads a tree collection file
// as defined in a project.
func (p *Project) Trees() (*timetree.Collection, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

// Tree reads a tree from the tree collection
// of a project.
// If the name is empty,
// and there is a single tree in the collection,
// it returns that tree.
func (p *Project) Tree(name string) (*timetree.Tree, error) {
	c, err := p.Trees()
	if err != nil {
		return nil, err
	}

	if name == "" {
		ls := c.Names()
		if len(ls) != 1 {
			return nil, fmt.Errorf("project %q: expecting a single tree, found %d", p.name, len(ls))
		}
		name = ls[0]
	}
	t := c.Tree(name)
	if t == nil {
		return nil, fmt.Errorf("project %q: tree %q not found", p.name, name)
	}
	return t, nil
}

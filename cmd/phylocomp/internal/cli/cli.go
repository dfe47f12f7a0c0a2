// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cli contains helpers shared
// by the PhyloComp commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/js-arias/phylocomp/project"
	"github.com/sirupsen/logrus"
)

// DefLogLevel is the default logging level
// of the commands.
const DefLogLevel = "warn"

// Logger returns a logger that writes text entries
// into w,
// at the indicated level.
func Logger(w io.Writer, level string) (*logrus.Logger, error) {
	if level == "" {
		level = DefLogLevel
	}
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("flag --log: %v", err)
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lv)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l, nil
}

// Source returns a PCG random source
// for the given seed.
// If seed is zero,
// a seed based on the current time is used.
// It returns the seed actually used
// so it can be reported.
func Source(seed uint64) (rand.Source, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), seed
}

// OpenProject reads a project file.
// If the file does not exist,
// it returns a new empty project
// with the given name.
func OpenProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

// WriteFile creates a file
// and writes its content with fn.
func WriteFile(name string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := fn(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

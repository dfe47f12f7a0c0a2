// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cli_test

import (
	"bytes"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/phylocomp/cmd/phylocomp/internal/cli"
	"github.com/js-arias/phylocomp/project"
	"github.com/sirupsen/logrus"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := cli.Logger(&buf, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.GetLevel() != logrus.WarnLevel {
		t.Errorf("level: got %v, want %v", l.GetLevel(), logrus.WarnLevel)
	}
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info entry written at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn entry not written: %q", buf.String())
	}

	if _, err := cli.Logger(&buf, "loud"); err == nil {
		t.Errorf("invalid level: expecting error")
	}
}

func TestSource(t *testing.T) {
	a, seed := cli.Source(42)
	if seed != 42 {
		t.Errorf("seed: got %d, want %d", seed, 42)
	}
	b, _ := cli.Source(42)
	ra, rb := rand.New(a), rand.New(b)
	for i := 0; i < 10; i++ {
		if x, y := ra.Uint64(), rb.Uint64(); x != y {
			t.Fatalf("draw %d: got %d, want %d", i, x, y)
		}
	}

	if _, seed := cli.Source(0); seed == 0 {
		t.Errorf("zero seed: expecting a time based seed")
	}
}

func TestOpenProject(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "project.tab")

	p, err := cli.OpenProject(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != name {
		t.Errorf("name: got %q, want %q", p.Name(), name)
	}

	p.Add(project.Trees, "trees.tab")
	if err := p.Write(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	np, err := cli.OpenProject(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := np.Path(project.Trees); got != "trees.tab" {
		t.Errorf("trees: got %q, want %q", got, "trees.tab")
	}
}

func TestWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.txt")
	err := cli.WriteFile(name, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello\n")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "hello\n" {
		t.Errorf("got %q, want %q", b, "hello\n")
	}
}

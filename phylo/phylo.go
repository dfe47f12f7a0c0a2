// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylo implements a view of a time-calibrated tree
// for the analysis of compositional data,
// in which each node is identified
// by the set of terminals it contains.
package phylo

import (
	"slices"

	"github.com/js-arias/timetree"
)

// MillionYears is the unit used for branch lengths.
const MillionYears = 1_000_000

// A Tree is a phylogenetic tree
// with precomputed terminal sets
// and branch lengths.
type Tree struct {
	t     *timetree.Tree
	nodes map[int]*node

	// nodes in preorder
	order []int

	// terminal names in preorder
	tips []string

	// age of each terminal, in million years
	tipAge map[string]float64
}

type node struct {
	id       int
	parent   int
	children []int
	desc     []string
	brLen    float64
}

// New creates a new tree view
// from a time calibrated tree.
func New(t *timetree.Tree) *Tree {
	nt := &Tree{
		t:      t,
		nodes:  make(map[int]*node, len(t.Nodes())),
		tipAge: make(map[string]float64),
	}
	root := &node{
		id:     t.Root(),
		parent: -1,
	}
	nt.nodes[root.id] = root
	root.copySource(nt)

	nt.tips = nt.preorderTips(root)
	return nt
}

func (n *node) copySource(t *Tree) {
	t.order = append(t.order, n.id)
	if !t.t.IsRoot(n.id) {
		n.brLen = float64(t.t.Age(n.parent)-t.t.Age(n.id)) / MillionYears
	}

	if t.t.IsTerm(n.id) {
		tx := t.t.Taxon(n.id)
		n.desc = []string{tx}
		t.tipAge[tx] = float64(t.t.Age(n.id)) / MillionYears
		return
	}

	for _, c := range t.t.Children(n.id) {
		nc := &node{
			id:     c,
			parent: n.id,
		}
		t.nodes[c] = nc
		n.children = append(n.children, c)
		nc.copySource(t)
		n.desc = append(n.desc, nc.desc...)
	}
	slices.Sort(n.desc)
}

func (t *Tree) preorderTips(n *node) []string {
	if len(n.children) == 0 {
		return []string{t.t.Taxon(n.id)}
	}
	var tips []string
	for _, c := range n.children {
		tips = append(tips, t.preorderTips(t.nodes[c])...)
	}
	return tips
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.t.Name()
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return t.t.Root()
}

// Nodes returns the IDs of the nodes
// in preorder.
func (t *Tree) Nodes() []int {
	return slices.Clone(t.order)
}

// Internal returns the IDs of the internal nodes
// in preorder.
func (t *Tree) Internal() []int {
	var in []int
	for _, id := range t.order {
		if len(t.nodes[id].children) > 0 {
			in = append(in, id)
		}
	}
	return in
}

// Edges returns the IDs of the nodes
// that have an edge to its parent
// (i.e., all nodes except the root),
// sorted by ID.
func (t *Tree) Edges() []int {
	edges := make([]int, 0, len(t.order)-1)
	for _, id := range t.order {
		if id == t.t.Root() {
			continue
		}
		edges = append(edges, id)
	}
	slices.Sort(edges)
	return edges
}

// Tips returns the names of the terminals
// in the order in which they are found
// in a preorder traversal.
func (t *Tree) Tips() []string {
	return slices.Clone(t.tips)
}

// Children returns the IDs of the children of a node.
func (t *Tree) Children(id int) []int {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.children)
}

// Parent returns the ID of the parent of a node.
// It returns -1 for the root.
func (t *Tree) Parent(id int) int {
	n, ok := t.nodes[id]
	if !ok {
		return -1
	}
	return n.parent
}

// Sister returns the ID of the sister node
// of a node in a binary split.
// It returns -1 if the node is the root,
// or if the parent is not a binary split.
func (t *Tree) Sister(id int) int {
	n, ok := t.nodes[id]
	if !ok || n.parent < 0 {
		return -1
	}
	p := t.nodes[n.parent]
	if len(p.children) != 2 {
		return -1
	}
	if p.children[0] == id {
		return p.children[1]
	}
	return p.children[0]
}

// Desc returns the sorted names of the terminals
// descendant of a node.
func (t *Tree) Desc(id int) []string {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.desc)
}

// BranchLen returns the length of the branch
// that connects a node with its parent,
// in million years.
func (t *Tree) BranchLen(id int) float64 {
	n, ok := t.nodes[id]
	if !ok {
		return 0
	}
	return n.brLen
}

// IsTerm returns true if the node is a terminal.
func (t *Tree) IsTerm(id int) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	return len(n.children) == 0
}

// IsBinary returns true if all internal nodes
// have exactly two children.
func (t *Tree) IsBinary() bool {
	for _, n := range t.nodes {
		if len(n.children) != 0 && len(n.children) != 2 {
			return false
		}
	}
	return true
}

// MeanTipDist returns the mean distance,
// in million years,
// between a node and its descendant terminals.
func (t *Tree) MeanTipDist(id int) float64 {
	n, ok := t.nodes[id]
	if !ok {
		return 0
	}
	if len(n.children) == 0 {
		return 0
	}
	age := float64(t.t.Age(id)) / MillionYears
	var sum float64
	for _, tx := range n.desc {
		sum += age - t.tipAge[tx]
	}
	return sum / float64(len(n.desc))
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(abundanceFilesGuide)
	app.Add(paramFilesGuide)
	app.Add(projectsGuide)
	app.Add(sampleFilesGuide)
	app.Add(traitFilesGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
PhyloComp requires several files to simulate and analyze abundance data. To
reduce the burden of keeping track of many files, a single project file is
used to hold the reference of all files required in the analysis. This guide
explains the structure of the file, but most of the time, the best and most
secure way to edit or view this file is by using phylocomp commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# phylocomp project files
	dataset	path
	abundance	abundance.tab
	params	params.tab
	samples	samples.tab
	traits	traits.tab
	trees	trees.tab

The valid file types are:

- Abundance tables. Defined by the dataset keyword "abundance". This file
  contains the counts of each species in each sample. The recommended way to
  create an abundance table is by using the command 'phylocomp abund sim'.
- Balances. Defined by the dataset keyword "balances". This file contains the
  PhILR balances of each sample, and it is created with the command
  'phylocomp philr'.
- Factors. Defined by the dataset keyword "factors". This file contains the
  factors found by a phylofactorization, and it is created with the command
  'phylocomp factor'.
- Analysis parameters. Defined by the dataset keyword "params". This file
  contains the parameters used for simulations and analyses. The recommended
  way to edit the parameters is by using the command 'phylocomp param'.
- Samples. Defined by the dataset keyword "samples". This file contains the
  disturbance frequency of each sample. The recommended way to create a sample
  file is by using the command 'phylocomp sample sim'.
- Traits. Defined by the dataset keyword "traits". This file contains a
  positive trait value (for example, a gene copy number) for each terminal of
  the tree. The recommended way to create a trait file is by using the command
  'phylocomp trait sim'.
- Time-calibrated trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file. The
  recommended way to add a tree file is by using the commands
  'phylocomp tree add' or 'phylocomp tree sim'.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In PhyloComp, phylogenetic trees must be time-calibrated and stored in a
tab-delimited file. The advantage of using a tab-delimited file is that it
would be easier to manipulate trees than in traditional newick files; for
example, it would be easier for commands in PhyloComp, as well as for
third-party applications, to understand the node IDs.

The recommended way to interact with time-calibrated trees in a PhyloComp
project is by using the commands in "phylocomp tree".

A tree file is a tab-delimited file with the following columns:

	- tree    the name of the tree
	- node    the ID of the node
	- parent  the ID of the parent node (-1 is used for the root)
	- age     the age of the node (in years)
	- taxon   the taxonomic name of the node

Here is an example file:

	# time calibrated phylogenetic tree
	tree	node	parent	age	taxon
	sim	0	-1	10000000
	sim	1	0	6000000
	sim	2	1	0	t1
	sim	3	1	0	t2
	sim	4	0	0	t3

Both the PhILR transform and the phylofactorization use the branch lengths of
the tree, and the PhILR transform requires a fully dichotomous tree.
	`,
}

var traitFilesGuide = &command.Command{
	Usage: "trait-files",
	Short: "about trait files",
	Long: `
A trait file contains a positive value for each terminal of a tree. In the
abundance simulation the trait is the niche trait of a species (for example,
the copy number of a gene) that determines its response to the disturbance of
a sample.

A trait file is a tab-delimited file with the following columns:

	- taxon  the name of the taxon
	- value  the value of the trait, it must be greater than zero

Here is an example file:

	# trait values
	taxon	value
	t1	1
	t2	3
	t3	2

In a PhyloComp project, the file that contains the traits is indicated with
the "traits" keyword.
	`,
}

var sampleFilesGuide = &command.Command{
	Usage: "sample-files",
	Short: "about sample files",
	Long: `
A sample file contains the disturbance frequency of each sample. In the
abundance simulation, the disturbance scales the effect of the trait of each
species: with zero disturbance all species have the same expected abundance,
with positive disturbance, species with large trait values are favored, and
with negative disturbance, species with small trait values are favored.

A sample file is a tab-delimited file with the following columns:

	- sample       the name of the sample
	- disturbance  the disturbance frequency of the sample (any real value)

Here is an example file:

	# samples
	sample	disturbance
	s1	-1.205337
	s2	0.117212
	s3	0.830431

In a PhyloComp project, the file that contains the samples is indicated with
the "samples" keyword.
	`,
}

var abundanceFilesGuide = &command.Command{
	Usage: "abundance-files",
	Short: "about abundance files",
	Long: `
An abundance file contains the counts of each species in each sample. The
table is stored in long form, one row per species and sample.

An abundance file is a tab-delimited file with the following columns:

	- species  the name of the species, it must be a terminal of the tree
	- sample   the name of the sample
	- count    the count (or abundance) of the species in the sample

Any species-sample pair not present in the file is taken as a zero count.

Here is an example file:

	# abundance table
	species	sample	count
	t1	s1	113
	t1	s2	0.65
	t2	s1	4087
	t2	s2	1260

Log-ratio analyses require all counts to be greater than zero. Zero counts can
be replaced by a pseudocount (0.65 by default) defined in the parameters file.

In a PhyloComp project, the file that contains the abundance table is
indicated with the "abundance" keyword.
	`,
}

var paramFilesGuide = &command.Command{
	Usage: "param-files",
	Short: "about analysis parameter files",
	Long: `
The analysis parameter file contains the values used for the simulations and
analyses of a PhyloComp project. The recommended way to interact with the
parameters is by using the command 'phylocomp param'.

A parameter file is a tab-delimited file with the following columns:

	- parameter  the name of the parameter
	- value      the value of the parameter

The valid parameters are:

	- mutotal      expected total count of a sample (default 10000)
	- dispersion   size of the negative binomial distribution (default 1)
	- scale        coefficient of the response to disturbance (default 3)
	- pseudocount  value used to replace zero counts (default 0.65)
	- partweights  PhILR part weights, one of "uniform", "gm.counts",
	               "anorm", or "anorm.x.gm.counts" (default uniform)
	- ilrweights   PhILR balance weights, one of "uniform", "blw",
	               "blw.sqrt", or "mean.descendants" (default blw.sqrt)
	- factors      number of factors of a phylofactorization (default 3)
	- choice       objective of a phylofactorization, either "var"
	               (explained variance) or "F" (F statistic) (default var)

Here is an example file:

	# phylocomp analysis parameters
	parameter	value
	mutotal	10000
	dispersion	1
	scale	3
	pseudocount	0.65
	partweights	uniform
	ilrweights	blw.sqrt
	factors	3
	choice	var

In a PhyloComp project, the file that contains the parameters is indicated
with the "params" keyword.
	`,
}

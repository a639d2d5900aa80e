package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bioinf-mcb/mdeepfri/cmap"
	"github.com/bioinf-mcb/mdeepfri/cmd/util"
	"github.com/bioinf-mcb/mdeepfri/pdb"
)

var flagSparse = false

func init() {
	flag.BoolVar(&flagSparse, "sparse", flagSparse,
		"When set, contacts are printed as index pairs instead of a matrix.")
	util.FlagUse("threshold", "max-len")
	util.FlagParse("pdb-file", "Print the residue contact map of a structure.")
	util.AssertNArg(1)
}

func main() {
	entry, err := pdb.Open(util.Arg(0))
	util.Assert(err, "Could not read PDB file '%s'", util.Arg(0))

	atoms := entry.CaAtoms()
	if len(atoms) == 0 {
		util.Fatalf("No alpha-carbon atoms found in '%s'.", util.Arg(0))
	}

	if flagSparse {
		contacts, err := cmap.Sparse(atoms, util.FlagThreshold, util.FlagMaxLen)
		util.Assert(err)
		for _, ct := range contacts {
			fmt.Printf("%d\t%d\n", ct[0], ct[1])
		}
		return
	}

	m, err := cmap.Dense(atoms, util.FlagThreshold, util.FlagMaxLen)
	util.Assert(err)
	n, _ := m.Dims()
	row := make([]byte, n*2)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.At(i, j) == 1 {
				row[j*2] = '1'
			} else {
				row[j*2] = '0'
			}
			row[j*2+1] = ' '
		}
		fmt.Fprintf(os.Stdout, "%s\n", row[:n*2-1])
	}
}

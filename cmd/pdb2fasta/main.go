package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/bioinf-mcb/mdeepfri/fasta"
	"github.com/bioinf-mcb/mdeepfri/pdb"
	"github.com/bioinf-mcb/mdeepfri/seq"
)

var (
	flagChain          = ""
	flagSeparateChains = false
	flagSeqRes         = false
)

func main() {
	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
	}

	pdbEntry, err := pdb.Open(flag.Arg(0))
	if err != nil {
		fatalf("Could not read PDB file '%s': %s", flag.Arg(0), err)
	}

	var fasOut io.Writer
	if flag.NArg() == 1 {
		fasOut = os.Stdout
	} else {
		fasOut, err = os.Create(flag.Arg(1))
		if err != nil {
			fatalf("Could not create FASTA file '%s': %s", flag.Arg(1), err)
		}
	}

	fasEntries := make([]seq.Sequence, 0, 5)
	if !flagSeparateChains {
		var fasEntry seq.Sequence
		if len(pdbEntry.Chains) == 1 {
			fasEntry.Name = chainHeader(pdbEntry, pdbEntry.OneChain())
		} else {
			fasEntry.Name = pdbEntry.IdCode
		}

		residues := make([]seq.Residue, 0, 100)
		for _, chain := range pdbEntry.Chains {
			if isChainUsable(chain) {
				for _, r := range chainSequence(chain) {
					residues = append(residues, seq.Residue(r))
				}
			}
		}
		fasEntry.Residues = residues

		if len(fasEntry.Residues) == 0 {
			fatalf("Could not find any amino acids.")
		}
		fasEntries = append(fasEntries, fasEntry)
	} else {
		for _, chain := range pdbEntry.Chains {
			if !isChainUsable(chain) {
				continue
			}

			residues := make([]seq.Residue, 0, 100)
			for _, r := range chainSequence(chain) {
				residues = append(residues, seq.Residue(r))
			}
			fasEntries = append(fasEntries, seq.Sequence{
				Name:     chainHeader(pdbEntry, chain),
				Residues: residues,
			})
		}
	}

	if len(fasEntries) == 0 {
		fatalf("Could not find any chains with amino acids.")
	}
	if err := fasta.NewWriter(fasOut).WriteAll(fasEntries); err != nil {
		fatalf("Could not write FASTA: %s", err)
	}
}

func chainHeader(entry *pdb.Entry, chain *pdb.Chain) string {
	return fmt.Sprintf("%s%c", strings.ToLower(entry.IdCode), chain.Ident)
}

func chainSequence(chain *pdb.Chain) []byte {
	if flagSeqRes {
		return chain.Sequence
	}
	return chain.CaSequence
}

func isChainUsable(chain *pdb.Chain) bool {
	if len(flagChain) == 0 {
		return true
	}
	for i := 0; i < len(flagChain); i++ {
		if chain.Ident == flagChain[i] {
			return true
		}
	}
	return false
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
	fmt.Fprintln(os.Stderr, "")
	os.Exit(1)
}

func init() {
	flag.BoolVar(&flagSeparateChains, "separate-chains", flagSeparateChains,
		"When set, each chain will get its own FASTA entry.")
	flag.StringVar(&flagChain, "chain", flagChain,
		"This may be set to one or more chain identifiers. Only amino acids "+
			"belonging to a chain specified will be included.")
	flag.BoolVar(&flagSeqRes, "seqres", flagSeqRes,
		"When set, sequences will be read from the SEQRES records. Otherwise, "+
			"sequences are read from residues in Ca ATOM records.")
	flag.Usage = usage
	flag.Parse()
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage: %s pdb2fasta [flags] in-pdb-file [out-fasta-file]\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(1)
}

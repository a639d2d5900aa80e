// Package pdb provides just enough parsing of PDB formatted files to drive
// contact-map construction: per-chain amino acid sequences from SEQRES
// records, and per-chain alpha-carbon coordinates from ATOM records.
package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

// AminoThreeToOne is a map from three letter amino acids to their
// corresponding single letter representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O', "UNK": 'X',
}

// AminoOneToThree is the reverse of AminoThreeToOne. It is created in
// this package's 'init' function.
var AminoOneToThree = map[byte]string{}

func init() {
	for k, v := range AminoThreeToOne {
		AminoOneToThree[v] = k
	}
}

// Coords is the cartesian coordinate of a single atom.
type Coords struct {
	X, Y, Z float64
}

func (c Coords) String() string {
	return fmt.Sprintf("(%0.3f, %0.3f, %0.3f)", c.X, c.Y, c.Z)
}

// Entry represents all information parsed from a particular PDB file.
// Chains are kept in the order in which they first appear in the file.
type Entry struct {
	Path   string
	IdCode string
	Chains []*Chain
}

// Chain represents a protein chain or subunit in a PDB file. Each chain has
// its own identifier, the amino acid sequence from its SEQRES records, the
// amino acid sequence of residues with an alpha-carbon ATOM record, and the
// coordinates of those alpha-carbons in residue order.
type Chain struct {
	Ident      byte
	Sequence   []byte
	CaSequence []byte
	CaAtoms    []Coords
}

// Open creates a new PDB Entry from a file. If the file cannot be read, or
// there is an error parsing the PDB file, an error is returned.
//
// If the file name ends with ".gz", gzip decompression will be used.
func Open(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		greader, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer greader.Close()
		reader = greader
	}

	entry, err := Read(reader)
	if err != nil {
		return nil, err
	}
	entry.Path = fileName
	if len(entry.IdCode) == 0 {
		base := strings.TrimSuffix(path.Base(fileName), ".gz")
		entry.IdCode = strings.TrimSuffix(base, path.Ext(base))
	}
	return entry, nil
}

// Read parses a PDB entry from the reader provided. Only HEADER, SEQRES and
// ATOM records are inspected; everything else is skipped. Parsing stops at
// the first ENDMDL record, so that multi-model files (NMR ensembles,
// predicted structures) contribute one set of coordinates per residue.
func Read(r io.Reader) (*Entry, error) {
	entry := &Entry{
		Chains: make([]*Chain, 0, 1),
	}

	breader := bufio.NewReaderSize(r, 1000)
	for {
		// We ignore 'isPrefix' here, since we never care about lines longer
		// than 1000 characters, which is the size of our buffer.
		line, _, err := breader.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(line) < 6 {
			continue
		}

		// The record name is always in the first six columns.
		switch strings.TrimSpace(string(line[0:6])) {
		case "HEADER":
			if len(line) >= 66 {
				entry.IdCode = strings.TrimSpace(string(line[62:66]))
			}
		case "SEQRES":
			entry.parseSeqres(line)
		case "ATOM":
			entry.parseAtom(line)
		case "ENDMDL":
			return entry, nil
		}
	}
	return entry, nil
}

// ReadString parses a PDB entry from a string. This is convenient when the
// PDB text comes from a structure archive rather than the file system.
func ReadString(s string) (*Entry, error) {
	return Read(strings.NewReader(s))
}

// CaAtoms returns the alpha-carbon coordinates of every chain, concatenated
// in file order. This is the residue ordering used for contact maps.
func (e *Entry) CaAtoms() []Coords {
	atoms := make([]Coords, 0, 100)
	for _, chain := range e.Chains {
		atoms = append(atoms, chain.CaAtoms...)
	}
	return atoms
}

// OneChain returns a single chain in the PDB file. If there is more than one
// chain, OneChain will panic. This is convenient when you expect a PDB file
// to have only a single chain, but don't know the name.
func (e *Entry) OneChain() *Chain {
	if len(e.Chains) != 1 {
		panic(fmt.Sprintf("OneChain can only be called on PDB entries with "+
			"ONE chain. But the '%s' PDB entry has %d chains.",
			e.Path, len(e.Chains)))
	}
	return e.Chains[0]
}

// String returns a sorted list of all chains and their sequences.
func (e *Entry) String() string {
	lines := make([]string, 0, len(e.Chains))
	for _, chain := range e.Chains {
		lines = append(lines, chain.String())
	}
	return strings.Join(lines, "\n")
}

// getOrMakeChain looks for a chain corresponding to the chain identifier.
// If one exists, it is returned. Otherwise a new chain is appended.
func (e *Entry) getOrMakeChain(ident byte) *Chain {
	for _, chain := range e.Chains {
		if chain.Ident == ident {
			return chain
		}
	}
	chain := &Chain{
		Ident:      ident,
		Sequence:   make([]byte, 0, 10),
		CaSequence: make([]byte, 0, 10),
		CaAtoms:    make([]Coords, 0, 10),
	}
	e.Chains = append(e.Chains, chain)
	return chain
}

// parseSeqres loads all pertinent information from SEQRES records in a PDB
// file. In particular, amino acid residues are read and added to the chain's
// "Sequence" field. If a residue isn't a valid amino acid, it is simply
// ignored.
//
// N.B. This assumes that the SEQRES records are in order in the PDB file.
func (e *Entry) parseSeqres(line []byte) {
	if len(line) < 12 {
		return
	}
	chain := e.getOrMakeChain(line[11])

	// Residues are in columns 19-21, 23-25, 27-29, ..., 67-69
	for i := 19; i <= 67; i += 4 {
		end := i + 3
		if end > len(line) {
			break
		}
		residue := strings.TrimSpace(string(line[i:end]))
		if single, ok := AminoThreeToOne[residue]; ok {
			chain.Sequence = append(chain.Sequence, single)
		}
	}
}

// parseAtom reads the coordinates of alpha-carbon ATOM records. Records for
// other atoms, for non-amino-acid residues, and for alternate locations
// other than the first are ignored.
func (e *Entry) parseAtom(line []byte) {
	if len(line) < 54 {
		return
	}

	// The atom name lives in columns 13-16, the alternate location
	// indicator in column 17.
	name := strings.TrimSpace(string(line[12:16]))
	altLoc := line[16]
	if name != "CA" || (altLoc != ' ' && altLoc != 'A') {
		return
	}

	// An ATOM record is only processed if it corresponds to an amino acid
	// residue. (Which is in columns 18-20.)
	residue := strings.TrimSpace(string(line[17:20]))
	single, ok := AminoThreeToOne[residue]
	if !ok {
		return
	}

	chain := e.getOrMakeChain(line[21])
	x, xerr := strconv.ParseFloat(strings.TrimSpace(string(line[30:38])), 64)
	y, yerr := strconv.ParseFloat(strings.TrimSpace(string(line[38:46])), 64)
	z, zerr := strconv.ParseFloat(strings.TrimSpace(string(line[46:54])), 64)
	if xerr != nil || yerr != nil || zerr != nil {
		return
	}
	chain.CaSequence = append(chain.CaSequence, single)
	chain.CaAtoms = append(chain.CaAtoms, Coords{x, y, z})
}

// String returns a FASTA-like formatted string of this chain and all of its
// related information.
func (c *Chain) String() string {
	return fmt.Sprintf("> Chain %c :: length %d\n%s",
		c.Ident, len(c.Sequence), string(c.Sequence))
}

// Package seq provides types for biological sequences, along with the
// length filtering and one-hot encoding used to prepare query proteins
// for function prediction.
package seq

import (
	"fmt"
)

// A Sequence corresponds to any kind of biological sequence: DNA, RNA,
// amino acid, etc.
type Sequence struct {
	Name     string
	Residues []Residue
}

// A Residue corresponds to a single entry in a sequence.
type Residue byte

// Copy returns a deep copy of the sequence.
func (s Sequence) Copy() Sequence {
	residues := make([]Residue, len(s.Residues))
	copy(residues, s.Residues)
	return Sequence{
		Name:     fmt.Sprintf("%s", s.Name),
		Residues: residues,
	}
}

// Slice returns a slice of the sequence. The name stays the same, and the
// sequence of residues corresponds to a Go slice of the original.
// (This does not copy data, so that if the original or sliced sequence is
// changed, the other one will too. Use Sequence.Copy first if you need copy
// semantics.)
func (s Sequence) Slice(start, end int) Sequence {
	return Sequence{
		Name:     s.Name,
		Residues: s.Residues[start:end],
	}
}

// Len returns the number of residues in the sequence.
func (s Sequence) Len() int {
	return len(s.Residues)
}

// IsNull returns true if the name has zero length and the residues are nil.
func (s Sequence) IsNull() bool {
	return len(s.Name) == 0 && s.Residues == nil
}

func (s Sequence) String() string {
	return fmt.Sprintf("> %s\n%s", s.Name, string(residueBytes(s.Residues)))
}

func residueBytes(residues []Residue) []byte {
	bs := make([]byte, len(residues))
	for i, r := range residues {
		bs[i] = byte(r)
	}
	return bs
}

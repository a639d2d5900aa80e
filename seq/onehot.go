package seq

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// oneHotSymbols is the residue vocabulary of the downstream prediction
// model. The order is fixed: row k of an encoding corresponds to the k'th
// residue of the sequence, and column OneHotIndex[sym] is hot.
var oneHotSymbols = []Residue{
	'-', 'D', 'G', 'U', 'L', 'N', 'T', 'K', 'H', 'Y', 'W', 'C', 'P', 'V',
	'S', 'O', 'I', 'E', 'F', 'X', 'Q', 'A', 'B', 'Z', 'R', 'M',
}

// OneHotIndex maps a residue symbol to its column in a one-hot encoding.
var OneHotIndex = map[Residue]int{}

func init() {
	for i, r := range oneHotSymbols {
		OneHotIndex[r] = i
	}
}

// OneHot encodes a protein sequence as an L x 26 matrix, where row i is the
// one-hot encoding of residue i. An error is returned if the sequence
// contains a symbol outside the 26 symbol vocabulary.
func OneHot(s Sequence) (*mat.Dense, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("Cannot one-hot encode empty sequence '%s'.",
			s.Name)
	}
	enc := mat.NewDense(s.Len(), len(oneHotSymbols), nil)
	for i, r := range s.Residues {
		col, ok := OneHotIndex[r]
		if !ok {
			return nil, fmt.Errorf("Unknown residue '%c' at position %d "+
				"of sequence '%s'.", r, i, s.Name)
		}
		enc.Set(i, col, 1)
	}
	return enc, nil
}

// Package cmap computes residue contact maps from 3-dimensional structure
// coordinates and projects them onto homologous sequences through gapped
// pairwise alignments.
//
// A contact map is a symmetric relation over residue indices: residues i
// and j are in contact when the distance between their alpha-carbons is
// strictly below a threshold. Dense maps are symmetric 0/1 matrices with
// the diagonal always set (every residue is distance 0 from itself).
package cmap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bioinf-mcb/mdeepfri/pdb"
)

// The default parameters of contact map construction and projection,
// matching the expectations of the downstream prediction model.
const (
	DefaultThreshold = 6.0
	DefaultMaxLen    = 1000
	DefaultGenerated = 2
)

// A Contact is a single (i, j) pair of residue indices within the distance
// threshold. Sparse contact sets are not canonicalized: both (i, j) and
// (j, i) may appear, along with diagonal pairs.
type Contact [2]int

// Dense computes the full symmetric contact matrix over the coordinates
// provided. Structures longer than maxLen are truncated from the end. An
// empty coordinate set yields a nil matrix and no error; callers skip such
// structures.
func Dense(atoms []pdb.Coords, threshold float64, maxLen int) (*mat.SymDense, error) {
	atoms, err := capped(atoms, threshold, maxLen)
	if err != nil {
		return nil, err
	}
	if len(atoms) == 0 {
		return nil, nil
	}

	n := len(atoms)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			if dist(atoms[i], atoms[j]) < threshold {
				m.SetSym(i, j, 1)
			}
		}
	}
	return m, nil
}

// Sparse computes the contact pairs over the coordinates provided. All pairs
// satisfying the distance predicate are emitted: both orderings for i != j
// and every diagonal pair. Structures longer than maxLen are truncated from
// the end. An empty coordinate set yields an empty pair list and no error.
func Sparse(atoms []pdb.Coords, threshold float64, maxLen int) ([]Contact, error) {
	atoms, err := capped(atoms, threshold, maxLen)
	if err != nil {
		return nil, err
	}

	n := len(atoms)
	contacts := make([]Contact, 0, n*4)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || dist(atoms[i], atoms[j]) < threshold {
				contacts = append(contacts, Contact{i, j})
			}
		}
	}
	return contacts, nil
}

func capped(atoms []pdb.Coords, threshold float64, maxLen int) ([]pdb.Coords, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: distance threshold must be positive, "+
			"got %g", ErrConfig, threshold)
	}
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: maximum structure length must be "+
			"positive, got %d", ErrConfig, maxLen)
	}
	if len(atoms) > maxLen {
		atoms = atoms[:maxLen]
	}
	return atoms, nil
}

func dist(a, b pdb.Coords) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

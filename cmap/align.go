package cmap

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Gap is the gap symbol of the pairwise alignments produced by sequence
// search.
const Gap = '-'

// Project remaps a sparse target contact set into the query's index space
// through a gapped pairwise alignment, and assembles the dense symmetric
// contact map of the query.
//
// Both alignment strings must have the same length; otherwise an
// AlignmentLengthError is returned before any work is done. The output
// dimension is the number of non-gap symbols in queryAln.
//
// A single left-to-right scan maintains independent ungapped counters for
// the query and target:
//
//   - A query gap aligned to a target residue consumes the target residue
//     with no query counterpart; contacts involving it are dropped later.
//   - A target gap aligned to a query residue leaves the query residue
//     without a structural template. For each offset j in 1..generated, the
//     heuristic contacts (q+j, q) and (q-j, q) are recorded instead,
//     approximating local chain proximity.
//   - A column gapped on both sides carries no residue at all and is
//     skipped: neither counter advances.
//   - A column with residues on both sides maps the target index to the
//     query index.
//
// Target contacts whose endpoints both survive the mapping are translated
// into query indices and merged with the generated contacts. Generated
// offsets that run past either end of the query are dropped silently. The
// diagonal of the result is always set.
//
// Duplicate or both-order pairs in targetContacts are harmless: assembly
// writes cells idempotently.
func Project(queryAln, targetAln string, targetContacts []Contact,
	generated int) (*mat.SymDense, error) {

	if len(queryAln) != len(targetAln) {
		return nil, AlignmentLengthError{
			QueryLen:  len(queryAln),
			TargetLen: len(targetAln),
		}
	}
	if generated < 0 {
		return nil, fmt.Errorf("%w: generated contact radius must not be "+
			"negative, got %d", ErrConfig, generated)
	}

	// toQuery maps each target ungapped index to its query ungapped index.
	// Target residues aligned against a query gap are simply absent, so the
	// comma-ok lookup below stands in for an unmapped sentinel.
	toQuery := make(map[int]int, len(targetAln))
	merged := make([]Contact, 0, len(targetContacts))

	targetIndex, queryIndex := 0, 0
	for c := 0; c < len(queryAln); c++ {
		switch {
		case queryAln[c] == Gap && targetAln[c] == Gap:
			// No residue on either side; nothing advances.
		case queryAln[c] == Gap:
			targetIndex++
		case targetAln[c] == Gap:
			for j := 1; j <= generated; j++ {
				merged = append(merged,
					Contact{queryIndex + j, queryIndex},
					Contact{queryIndex - j, queryIndex})
			}
			queryIndex++
		default:
			toQuery[targetIndex] = queryIndex
			queryIndex++
			targetIndex++
		}
	}

	// Translate target contacts into query index space, dropping any pair
	// with an endpoint that has no query counterpart.
	for _, ct := range targetContacts {
		qi, iok := toQuery[ct[0]]
		qj, jok := toQuery[ct[1]]
		if iok && jok {
			merged = append(merged, Contact{qi, qj})
		}
	}

	n := queryIndex
	if n == 0 {
		return nil, nil
	}
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetSym(i, i, 1)
	}
	for _, ct := range merged {
		// Only the offset endpoint of a generated contact can fall outside
		// the query; its center and all translated indices are in range by
		// construction.
		if ct[0] < 0 || ct[0] >= n {
			continue
		}
		if ct[0] <= ct[1] {
			out.SetSym(ct[0], ct[1], 1)
		} else {
			out.SetSym(ct[1], ct[0], 1)
		}
	}
	return out, nil
}

// UngappedLen returns the number of non-gap symbols in a gapped alignment
// string. It equals the dimension of the map Project returns for that
// string as a query.
func UngappedLen(aln string) int {
	n := 0
	for i := 0; i < len(aln); i++ {
		if aln[i] != Gap {
			n++
		}
	}
	return n
}

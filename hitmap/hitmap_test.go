package hitmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioinf-mcb/mdeepfri/apps/mmseqs"
	"github.com/bioinf-mcb/mdeepfri/cmap"
	"github.com/bioinf-mcb/mdeepfri/pdb"
)

// fakeSource serves fixed coordinate sets from memory.
type fakeSource map[string][]pdb.Coords

func (s fakeSource) Structure(id string) ([]pdb.Coords, error) {
	atoms, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("no structure named '%s'", id)
	}
	return atoms, nil
}

// Five residues in a line, one angstrom apart: each residue contacts its
// neighbors within 6 angstroms on either side.
var fakeAtoms = []pdb.Coords{
	{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4},
}

func makeHit(query, target, qaln, taln string) mmseqs.Hit {
	return mmseqs.Hit{
		Query:  query,
		Target: target,
		QAln:   qaln,
		TAln:   taln,
	}
}

func TestTargetID(t *testing.T) {
	assert.Equal(t, "AF-P1", TargetID(makeHit("q", "AF-P1.pdb", "", "")))
	assert.Equal(t, "AF-P1", TargetID(makeHit("q", "AF-P1", "", "")))
}

func TestMapHit(t *testing.T) {
	src := fakeSource{"t1": fakeAtoms}
	conf := DefaultConfig

	hm, err := conf.MapHit(src, makeHit("q1", "t1.pdb", "ABCDE", "ABCDE"))
	require.NoError(t, err)

	n, _ := hm.Map.Dims()
	require.Equal(t, 5, n)
	// All five residues are within 6 angstroms of each other.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, 1.0, hm.Map.At(i, j), "cell (%d, %d)", i, j)
		}
	}
}

func TestMapHitEmptyStructure(t *testing.T) {
	src := fakeSource{"empty": nil}
	_, err := DefaultConfig.MapHit(src, makeHit("q1", "empty.pdb", "AB", "AB"))
	require.Error(t, err)
	assert.ErrorIs(t, err, cmap.ErrEmptyStructure)

	var hitErr HitError
	require.ErrorAs(t, err, &hitErr)
	assert.Equal(t, "q1", hitErr.Query)
	assert.Equal(t, "empty.pdb", hitErr.Target)
}

func TestMapHitAlignmentMismatch(t *testing.T) {
	src := fakeSource{"t1": fakeAtoms}
	_, err := DefaultConfig.MapHit(src, makeHit("q1", "t1.pdb", "ABCDE", "ABCD"))
	require.Error(t, err)

	var lenErr cmap.AlignmentLengthError
	assert.ErrorAs(t, err, &lenErr)
}

func TestMapAll(t *testing.T) {
	src := fakeSource{"t1": fakeAtoms, "empty": nil}
	hits := []mmseqs.Hit{
		makeHit("q1", "t1.pdb", "ABCDE", "ABCDE"),
		makeHit("q2", "empty.pdb", "AB", "AB"),
		makeHit("q3", "missing.pdb", "AB", "AB"),
		makeHit("q4", "t1.pdb", "ABCDE", "AB-DE"),
	}

	conf := DefaultConfig
	conf.CPUs = 2
	maps, errs := conf.MapAll(src, hits)

	require.Len(t, maps, 2)
	// Successful maps keep the input hit order.
	assert.Equal(t, "q1", maps[0].Hit.Query)
	assert.Equal(t, "q4", maps[1].Hit.Query)

	require.Len(t, errs, 2)
	failed := map[string]bool{}
	for _, hitErr := range errs {
		failed[hitErr.Query] = true
	}
	assert.True(t, failed["q2"])
	assert.True(t, failed["q3"])
}

func TestMapAllNoHits(t *testing.T) {
	maps, errs := DefaultConfig.MapAll(fakeSource{}, nil)
	assert.Empty(t, maps)
	assert.Empty(t, errs)
}

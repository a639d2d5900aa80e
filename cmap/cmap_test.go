package cmap

import (
	"errors"
	"testing"

	"github.com/bioinf-mcb/mdeepfri/pdb"
)

// Three residues on a line: 0 and 1 are within 6 angstroms of each other,
// 2 is isolated.
var lineAtoms = []pdb.Coords{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 10, Y: 0, Z: 0},
}

func TestSparseLine(t *testing.T) {
	contacts, err := Sparse(lineAtoms, 6.0, 1000)
	if err != nil {
		t.Fatalf("Sparse: %s", err)
	}
	answer := []Contact{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 2}}
	testEqualContacts(t, contacts, answer)
}

func TestDenseLine(t *testing.T) {
	m, err := Dense(lineAtoms, 6.0, 1000)
	if err != nil {
		t.Fatalf("Dense: %s", err)
	}
	answer := [3][3]float64{
		{1, 1, 0},
		{1, 1, 0},
		{0, 0, 1},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m.At(i, j) != answer[i][j] {
				t.Fatalf("Cell (%d, %d) is %f, but should be %f.",
					i, j, m.At(i, j), answer[i][j])
			}
		}
	}
}

func TestThresholdIsStrict(t *testing.T) {
	// Residues exactly at the threshold distance are NOT in contact.
	atoms := []pdb.Coords{
		{X: 0, Y: 0, Z: 0},
		{X: 6, Y: 0, Z: 0},
	}
	m, err := Dense(atoms, 6.0, 1000)
	if err != nil {
		t.Fatalf("Dense: %s", err)
	}
	if m.At(0, 1) != 0 {
		t.Fatalf("Residues at exactly the threshold distance should not " +
			"be in contact.")
	}
}

func TestTruncation(t *testing.T) {
	m, err := Dense(lineAtoms, 6.0, 2)
	if err != nil {
		t.Fatalf("Dense: %s", err)
	}
	if r, c := m.Dims(); r != 2 || c != 2 {
		t.Fatalf("Truncated map is %dx%d, but should be 2x2.", r, c)
	}

	contacts, err := Sparse(lineAtoms, 6.0, 2)
	if err != nil {
		t.Fatalf("Sparse: %s", err)
	}
	testEqualContacts(t, contacts, []Contact{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
}

func TestEmptyStructure(t *testing.T) {
	m, err := Dense(nil, 6.0, 1000)
	if err != nil {
		t.Fatalf("An empty structure is not an error, got: %s", err)
	}
	if m != nil {
		t.Fatalf("An empty structure should yield a nil dense map.")
	}

	contacts, err := Sparse(nil, 6.0, 1000)
	if err != nil {
		t.Fatalf("An empty structure is not an error, got: %s", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("An empty structure should yield no contacts, got %d.",
			len(contacts))
	}
}

func TestBadConfig(t *testing.T) {
	if _, err := Dense(lineAtoms, 0, 1000); !errors.Is(err, ErrConfig) {
		t.Fatalf("A zero threshold should be a config error, got: %v", err)
	}
	if _, err := Dense(lineAtoms, -1.5, 1000); !errors.Is(err, ErrConfig) {
		t.Fatalf("A negative threshold should be a config error, got: %v",
			err)
	}
	if _, err := Sparse(lineAtoms, 6.0, 0); !errors.Is(err, ErrConfig) {
		t.Fatalf("A zero length cap should be a config error, got: %v", err)
	}
}

func testEqualContacts(t *testing.T, computed, answer []Contact) {
	t.Helper()
	if len(computed) != len(answer) {
		t.Fatalf("\nComputed contacts are\n\n%v\n\nbut answer is\n\n%v",
			computed, answer)
	}
	for i := range computed {
		if computed[i] != answer[i] {
			t.Fatalf("\nComputed contacts are\n\n%v\n\nbut answer is\n\n%v",
				computed, answer)
		}
	}
}

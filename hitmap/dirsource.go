package hitmap

import (
	"fmt"
	"os"
	"path"

	"github.com/bioinf-mcb/mdeepfri/pdb"
)

// A DirSource serves structures from a directory of PDB files named
// '<id>.pdb' or '<id>.pdb.gz'. It is safe for concurrent use.
type DirSource struct {
	Dir string
}

func (s DirSource) Structure(id string) ([]pdb.Coords, error) {
	for _, ext := range []string{".pdb", ".pdb.gz", ".ent", ".ent.gz"} {
		fileName := path.Join(s.Dir, id+ext)
		if _, err := os.Stat(fileName); err != nil {
			continue
		}
		entry, err := pdb.Open(fileName)
		if err != nil {
			return nil, err
		}
		return entry.CaAtoms(), nil
	}
	return nil, fmt.Errorf("no structure named '%s' in '%s'", id, s.Dir)
}

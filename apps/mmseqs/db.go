// Package mmseqs wraps the MMseqs2 executable: building sequence databases,
// running profile-free homology searches and parsing the tabular results
// with their gapped alignment strings.
package mmseqs

import (
	"fmt"
	"os"
	"path"

	"github.com/BurntSushi/cmd"
)

// Exec is the name of the MMseqs2 executable. Change it if mmseqs is not
// on your PATH.
var Exec = "mmseqs"

// A Database is an MMseqs2 sequence database. A value of type Database is
// the path prefix of the database files, i.e. for targetDB.index,
// targetDB.dbtype and friends, just use 'Database("targetDB")'.
type Database string

// dbExts are the companion files of a complete indexed MMseqs2 database.
var dbExts = []string{
	".index", ".dbtype", "_h", "_h.index", "_h.dbtype", ".idx",
	".idx.index", ".idx.dbtype", ".lookup", ".source",
}

// CreateDatabase converts a FASTA file into an MMseqs2 amino acid sequence
// database at the path prefix given.
func CreateDatabase(fastaFile string, db Database) error {
	c := cmd.New(Exec, "createdb", fastaFile, string(db), "--dbtype", "1")
	if err := c.Run(); err != nil {
		return fmt.Errorf("Could not create MMseqs2 database '%s': %s",
			db, err)
	}
	return nil
}

// Index precomputes the search index of a database. Indexing is optional
// but advised for databases searched repeatedly.
func (db Database) Index(threads int) error {
	tmpDir, err := os.MkdirTemp("", "mdeepfri-mmseqs-index")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	c := cmd.New(Exec, "createindex", string(db), tmpDir,
		"--threads", fmt.Sprintf("%d", threads))
	if err := c.Run(); err != nil {
		return fmt.Errorf("Could not index MMseqs2 database '%s': %s",
			db, err)
	}
	return nil
}

// Valid reports whether every companion file of an indexed database is in
// place. The name of the first missing file is returned otherwise.
func (db Database) Valid() (bool, string) {
	for _, ext := range dbExts {
		name := string(db) + ext
		if _, err := os.Stat(name); err != nil {
			return false, name
		}
	}
	return true, ""
}

// Name returns the base name of the database, without its directory.
func (db Database) Name() string {
	return path.Base(string(db))
}

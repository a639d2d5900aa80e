// Package foldcomp wraps the foldcomp executable to retrieve single
// structures from a compressed structure database by identifier, and to
// extract the database's sequences as FASTA for building a search database.
package foldcomp

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/BurntSushi/cmd"

	"github.com/bioinf-mcb/mdeepfri/pdb"
)

// A Database is the path to a foldcomp compressed structure database.
type Database string

// esmDatabases are the databases whose FASTA headers carry an
// "ESMFOLD V0 PREDICTION FOR " prefix that must be stripped before the
// headers can serve as sequence identifiers.
var esmDatabases = []string{
	"highquality_clust30", "esmatlas", "esmatlas_v2023_02",
}

type Config struct {
	Exec    string
	Threads int

	// When true, the foldcomp stdout and stderr will be mapped to the
	// current processes' stdout and stderr.
	Verbose bool
}

var Default = Config{
	Exec:    "foldcomp",
	Threads: runtime.NumCPU(),
	Verbose: false,
}

// Structure retrieves a single entry from the database and parses it as a
// PDB file.
func (conf Config) Structure(db Database, id string) (*pdb.Entry, error) {
	tmpDir, err := os.MkdirTemp("", "mdeepfri-foldcomp")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	idFile := path.Join(tmpDir, "ids")
	if err := os.WriteFile(idFile, []byte(id+"\n"), 0666); err != nil {
		return nil, err
	}

	outDir := path.Join(tmpDir, "out")
	if err := os.Mkdir(outDir, 0755); err != nil {
		return nil, err
	}
	c := cmd.New(conf.Exec, "decompress",
		"--id-list", idFile, string(db), outDir)
	if conf.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stdout = os.Stdout
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("Could not decompress '%s' from '%s': %s",
			id, db, err)
	}

	entry, err := pdb.Open(path.Join(outDir, id+".pdb"))
	if err != nil {
		return nil, err
	}
	entry.Path = string(db) + ":" + id
	return entry, nil
}

// ExtractFasta extracts every sequence of the database into a FASTA file.
// For ESM Atlas databases the prediction prefix is stripped from each
// header so that the identifiers match the structure names.
func (conf Config) ExtractFasta(db Database, outFile string) error {
	c := cmd.New(conf.Exec, "extract", "--fasta",
		"-t", fmt.Sprintf("%d", conf.Threads), string(db), outFile)
	if conf.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stdout = os.Stdout
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("Could not extract FASTA from '%s': %s", db, err)
	}

	name := strings.TrimSuffix(path.Base(string(db)), path.Ext(string(db)))
	for _, esm := range esmDatabases {
		if name == esm {
			return stripEsmHeaders(outFile)
		}
	}
	return nil
}

const esmHeaderPrefix = ">ESMFOLD V0 PREDICTION FOR "

// stripEsmHeaders rewrites a FASTA file in place, removing the ESMFold
// prediction prefix from every header line.
func stripEsmHeaders(fastaFile string) error {
	in, err := os.Open(fastaFile)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.CreateTemp(path.Dir(fastaFile), "esm-headers")
	if err != nil {
		return err
	}
	defer os.Remove(out.Name())

	buf := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, esmHeaderPrefix) {
			line = ">" + line[len(esmHeaderPrefix):]
		}
		if _, err := fmt.Fprintln(buf, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Rename(out.Name(), fastaFile)
}

// A Source retrieves structure coordinates from a foldcomp database. It
// satisfies the hitmap.StructureSource interface.
type Source struct {
	Conf Config
	DB   Database
}

// Structure returns the alpha-carbon coordinates of the structure with the
// identifier given.
func (s Source) Structure(id string) ([]pdb.Coords, error) {
	entry, err := s.Conf.Structure(s.DB, id)
	if err != nil {
		return nil, err
	}
	return entry.CaAtoms(), nil
}

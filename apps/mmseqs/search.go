package mmseqs

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/BurntSushi/cmd"
)

// The sensitivity range accepted by 'mmseqs search -s'.
const (
	MinSensitivity = 1.0
	MaxSensitivity = 7.5
)

type SearchConfig struct {
	// EValue is the inclusion threshold passed to 'mmseqs search -e'.
	EValue float64

	// Sensitivity trades speed for search depth. Must lie within
	// [MinSensitivity, MaxSensitivity].
	Sensitivity float64

	Threads int

	// When true, the mmseqs stdout and stderr will be mapped to the
	// current processes' stdout and stderr.
	Verbose bool
}

var SearchDefault = SearchConfig{
	EValue:      1e-4,
	Sensitivity: 5.7,
	Threads:     runtime.NumCPU(),
	Verbose:     false,
}

// Run searches the query FASTA file against the target database and returns
// the parsed hits. The query may also be the path prefix of an existing
// MMseqs2 database. All intermediate databases live in a temporary
// directory that is removed before Run returns.
func (conf SearchConfig) Run(queryFasta string, db Database) (*SearchResult, error) {
	if conf.Sensitivity < MinSensitivity || conf.Sensitivity > MaxSensitivity {
		return nil, fmt.Errorf("Sensitivity %g is outside [%g, %g].",
			conf.Sensitivity, MinSensitivity, MaxSensitivity)
	}

	tmpDir, err := os.MkdirTemp("", "mdeepfri-mmseqs")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	queryDB := Database(path.Join(tmpDir, "queryDB"))
	if isFasta(queryFasta) {
		if err := CreateDatabase(queryFasta, queryDB); err != nil {
			return nil, err
		}
	} else {
		queryDB = Database(queryFasta)
	}

	resultDB := path.Join(tmpDir, "resultDB")
	searchTmp := path.Join(tmpDir, "search")
	if err := os.Mkdir(searchTmp, 0755); err != nil {
		return nil, err
	}
	search := cmd.New(Exec, "search",
		"-e", fmt.Sprintf("%g", conf.EValue),
		"-s", fmt.Sprintf("%g", conf.Sensitivity),
		"--threads", fmt.Sprintf("%d", conf.Threads),
		string(queryDB), string(db), resultDB, searchTmp)
	if conf.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", search)
		search.Cmd.Stdout = os.Stdout
		search.Cmd.Stderr = os.Stderr
	}
	if err := search.Run(); err != nil {
		return nil, fmt.Errorf("MMseqs2 search failed: %s", err)
	}

	outFile := path.Join(tmpDir, "results.tsv")
	convert := cmd.New(Exec, "convertalis",
		string(queryDB), string(db), resultDB, outFile,
		"--format-mode", "4",
		"--format-output", strings.Join(hitColumns, ","))
	if err := convert.Run(); err != nil {
		return nil, fmt.Errorf("MMseqs2 convertalis failed: %s", err)
	}

	f, err := os.Open(outFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hits, err := ReadHits(f)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Hits:       hits,
		QueryFasta: queryFasta,
		Database:   db,
	}, nil
}

// isFasta reports whether a file looks like FASTA data, i.e. its first
// byte is '>'. MMseqs2 database files never start with one.
func isFasta(fileName string) bool {
	f, err := os.Open(fileName)
	if err != nil {
		return false
	}
	defer f.Close()

	first := make([]byte, 1)
	if _, err := f.Read(first); err != nil {
		return false
	}
	return first[0] == '>'
}

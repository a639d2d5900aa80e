// mdeepfri runs the front half of structure-based function prediction:
// query proteins are searched against a sequence database of proteins with
// known structures, and every usable hit's contact map is projected onto
// the query through the hit's pairwise alignment. The projected maps are
// the input of the downstream prediction model.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/bioinf-mcb/mdeepfri/apps/foldcomp"
	"github.com/bioinf-mcb/mdeepfri/apps/mmseqs"
	"github.com/bioinf-mcb/mdeepfri/cmd/util"
	"github.com/bioinf-mcb/mdeepfri/fasta"
	"github.com/bioinf-mcb/mdeepfri/hitmap"
	"github.com/bioinf-mcb/mdeepfri/seq"
)

var (
	flagPdbDir     = ""
	flagFoldcompDB = ""
)

func init() {
	flag.StringVar(&flagPdbDir, "pdb-dir", flagPdbDir,
		"A directory of PDB files, named by structure identifier.")
	flag.StringVar(&flagFoldcompDB, "foldcomp-db", flagFoldcompDB,
		"A foldcomp compressed structure database.")
	util.FlagUse("cpu", "threshold", "max-len", "generated",
		"query-len", "search", "verbose")
	util.FlagParse("query-fasta target-db out-dir",
		"Search query proteins against a structure-backed sequence database\n"+
			"and write a projected contact map for every usable hit.\n"+
			"Exactly one of -pdb-dir or -foldcomp-db must be given.")
	util.AssertNArg(3)
}

func main() {
	queryFasta, targetDB, outDir := util.Arg(0), util.Arg(1), util.Arg(2)

	source := structureSource()
	util.Assert(os.MkdirAll(outDir, 0755), "Could not create '%s'", outDir)

	queries := loadQueries(queryFasta, outDir)

	// The filtered queries become the actual search input.
	filtered := path.Join(outDir, "query.filtered.fasta")
	fout := util.CreateFile(filtered)
	util.Assert(fasta.NewWriter(fout).WriteAll(queries),
		"Could not write '%s'", filtered)
	util.Assert(fout.Close())

	searchConf := mmseqs.SearchDefault
	searchConf.EValue = util.FlagEValue
	searchConf.Sensitivity = util.FlagSensitivity
	searchConf.Threads = util.FlagCpu
	searchConf.Verbose = util.FlagVerbose

	result, err := searchConf.Run(filtered, mmseqs.Database(targetDB))
	util.Assert(err, "Sequence search failed")
	util.Warnf("Found %d hits for %d query proteins.",
		len(result.Hits), len(queries))

	result.Hits = result.Filter(util.FlagMinIdent, util.FlagEValue)
	hits := result.Best(util.FlagTopK)
	util.Warnf("%d hits remain after filtering with k=%d best hits.",
		len(hits), util.FlagTopK)

	hitsFile := path.Join(outDir, "search_results.tsv")
	hout := util.CreateFile(hitsFile)
	util.Assert(mmseqs.WriteHits(hout, hits),
		"Could not write '%s'", hitsFile)
	util.Assert(hout.Close())

	mapConf := hitmap.Config{
		Threshold: util.FlagThreshold,
		MaxLen:    util.FlagMaxLen,
		Generated: util.FlagGenerated,
		CPUs:      util.FlagCpu,
	}
	maps, hitErrs := mapConf.MapAll(source, hits)
	for _, hitErr := range hitErrs {
		util.Warnf("Skipping hit %s -> %s: %s.",
			hitErr.Query, hitErr.Target, hitErr.Err)
	}

	for _, hm := range maps {
		name := fmt.Sprintf("%s__%s.cmap", hm.Hit.Query,
			hitmap.TargetID(hm.Hit))
		writeMap(path.Join(outDir, name), hm)
	}
	util.Warnf("Wrote %d contact maps to %s.", len(maps), outDir)
}

// structureSource builds the structure backend from the -pdb-dir or
// -foldcomp-db flag.
func structureSource() hitmap.StructureSource {
	switch {
	case len(flagPdbDir) > 0 && len(flagFoldcompDB) > 0:
		util.Fatalf("Only one of -pdb-dir and -foldcomp-db may be given.")
	case len(flagPdbDir) > 0:
		util.AssertIsDir(flagPdbDir)
		return hitmap.DirSource{Dir: flagPdbDir}
	case len(flagFoldcompDB) > 0:
		conf := foldcomp.Default
		conf.Verbose = util.FlagVerbose
		return foldcomp.Source{Conf: conf, DB: foldcomp.Database(flagFoldcompDB)}
	}
	util.Fatalf("One of -pdb-dir and -foldcomp-db must be given.")
	panic("unreachable")
}

// loadQueries reads the query FASTA file and drops proteins outside the
// length range of the prediction model. The identifiers of dropped proteins
// are recorded in a JSON file next to the output maps.
func loadQueries(queryFasta, outDir string) []seq.Sequence {
	reader, closer, err := fasta.Open(queryFasta)
	util.Assert(err, "Could not open '%s'", queryFasta)
	seqs, err := reader.ReadAll()
	util.Assert(err, "Could not read '%s'", queryFasta)
	util.Assert(closer())

	if len(seqs) == 0 {
		util.Fatalf("'%s' does not contain parsable protein sequences.",
			queryFasta)
	}
	util.Warnf("Found total of %d protein sequences in %s.",
		len(seqs), queryFasta)

	kept, skipped := seq.FilterLength(seqs, util.FlagMinLen,
		util.FlagMaxQueryLen)
	if len(skipped) > 0 {
		util.Warnf("Skipping %d proteins due to sequence length outside "+
			"range %d-%d aa.", len(skipped), util.FlagMinLen,
			util.FlagMaxQueryLen)

		lengths := make(map[string]int, len(skipped))
		for _, s := range skipped {
			lengths[s.Name] = s.Len()
		}
		sidecar := path.Join(outDir, "metadata_skipped_ids_due_to_length.json")
		f := util.CreateFile(sidecar)
		enc := json.NewEncoder(f)
		enc.SetIndent("", "    ")
		util.Assert(enc.Encode(lengths), "Could not write '%s'", sidecar)
		util.Assert(f.Close())
	}
	if len(kept) == 0 {
		util.Fatalf("All proteins were filtered out due to sequence length.")
	}
	return kept
}

// writeMap writes one projected contact map as rows of space separated
// 0/1 cells.
func writeMap(fileName string, hm hitmap.HitMap) {
	f := util.CreateFile(fileName)
	n, _ := hm.Map.Dims()
	row := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		row = row[:0]
		for j := 0; j < n; j++ {
			if j > 0 {
				row = append(row, ' ')
			}
			if hm.Map.At(i, j) == 1 {
				row = append(row, '1')
			} else {
				row = append(row, '0')
			}
		}
		_, err := fmt.Fprintf(f, "%s\n", row)
		util.Assert(err, "Could not write '%s'", fileName)
	}
	util.Assert(f.Close())
}

// Package hitmap turns sequence-search hits into projected contact maps:
// for each hit, the target's structure is retrieved, its contact map is
// computed and projected onto the query through the hit's gapped alignment.
package hitmap

import (
	"fmt"
	"runtime"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/bioinf-mcb/mdeepfri/apps/mmseqs"
	"github.com/bioinf-mcb/mdeepfri/cmap"
	"github.com/bioinf-mcb/mdeepfri/pdb"
)

// A StructureSource retrieves the ordered alpha-carbon coordinates of a
// structure by its identifier. Implementations that cannot serve concurrent
// reads must serialize internally; the worker pool calls Structure from
// multiple goroutines.
type StructureSource interface {
	Structure(id string) ([]pdb.Coords, error)
}

type Config struct {
	// Threshold is the contact distance threshold in angstroms.
	Threshold float64

	// MaxLen caps the number of residues taken from a structure.
	MaxLen int

	// Generated is the radius of heuristic local contacts synthesized for
	// query residues without a structural template.
	Generated int

	// CPUs bounds the number of hits processed concurrently.
	CPUs int
}

var DefaultConfig = Config{
	Threshold: cmap.DefaultThreshold,
	MaxLen:    cmap.DefaultMaxLen,
	Generated: cmap.DefaultGenerated,
	CPUs:      runtime.NumCPU(),
}

// A HitMap pairs a search hit with the query contact map projected from
// the hit's target structure.
type HitMap struct {
	Hit mmseqs.Hit
	Map *mat.SymDense
}

// A HitError tags a per-hit failure with the hit it belongs to. Failures
// are permanent for that hit; the caller decides whether to skip it or
// abort the batch.
type HitError struct {
	Query  string
	Target string
	Err    error
}

func (e HitError) Error() string {
	return fmt.Sprintf("hit %s -> %s: %s", e.Query, e.Target, e.Err)
}

func (e HitError) Unwrap() error {
	return e.Err
}

// TargetID derives the structure identifier from a hit's target name by
// stripping the final extension, so that 'AF-P00000.pdb' resolves the
// structure named 'AF-P00000'.
func TargetID(hit mmseqs.Hit) string {
	if i := strings.LastIndex(hit.Target, "."); i >= 0 {
		return hit.Target[:i]
	}
	return hit.Target
}

// MapHit retrieves the hit's target structure and projects its contact map
// onto the query. Errors are returned as HitError values.
func (conf Config) MapHit(src StructureSource, hit mmseqs.Hit) (HitMap, error) {
	fail := func(err error) (HitMap, error) {
		return HitMap{}, HitError{Query: hit.Query, Target: hit.Target, Err: err}
	}

	atoms, err := src.Structure(TargetID(hit))
	if err != nil {
		return fail(err)
	}
	if len(atoms) == 0 {
		return fail(cmap.ErrEmptyStructure)
	}

	contacts, err := cmap.Sparse(atoms, conf.Threshold, conf.MaxLen)
	if err != nil {
		return fail(err)
	}
	m, err := cmap.Project(hit.QAln, hit.TAln, contacts, conf.Generated)
	if err != nil {
		return fail(err)
	}
	if m == nil {
		return fail(fmt.Errorf("query alignment '%s' has no residues",
			hit.QAln))
	}
	return HitMap{Hit: hit, Map: m}, nil
}

// MapAll projects contact maps for every hit, processing up to conf.CPUs
// hits concurrently. Successful maps are returned in the order of the input
// hits, along with the errors of the hits that failed. A failed hit never
// aborts the batch.
func (conf Config) MapAll(src StructureSource, hits []mmseqs.Hit) ([]HitMap, []HitError) {
	workers := conf.CPUs
	if workers < 1 {
		workers = 1
	}
	p := newMapWorkers(conf, src, workers)
	go func() {
		for i, hit := range hits {
			p.enqueue(i, hit)
		}
		p.done()
	}()

	maps := make([]*HitMap, len(hits))
	errs := make([]HitError, 0)
	for res := range p.results {
		res := res
		if res.err != nil {
			errs = append(errs, *res.err)
		} else {
			maps[res.index] = &res.hm
		}
	}

	ordered := make([]HitMap, 0, len(hits))
	for _, hm := range maps {
		if hm != nil {
			ordered = append(ordered, *hm)
		}
	}
	return ordered, errs
}

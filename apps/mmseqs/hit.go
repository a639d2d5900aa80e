package mmseqs

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// hitColumns is the fixed column schema requested from 'mmseqs convertalis'
// and written back out by WriteHits. The gapped alignment strings qaln and
// taln are what drive contact-map projection downstream.
var hitColumns = []string{
	"query", "target", "fident", "alnlen", "mismatch", "gapopen",
	"qstart", "qend", "tstart", "tend", "evalue", "bits", "qaln", "taln",
}

// A Hit is a single pairwise alignment reported by an MMseqs2 search.
// Fields mirror the convertalis columns of the same names.
type Hit struct {
	Query    string
	Target   string
	Fident   float64
	AlnLen   int
	Mismatch int
	GapOpen  int
	QStart   int
	QEnd     int
	TStart   int
	TEnd     int
	EValue   float64
	Bits     float64
	QAln     string
	TAln     string
}

// A SearchResult pairs the hits of one search with the inputs that
// produced them.
type SearchResult struct {
	Hits       []Hit
	QueryFasta string
	Database   Database
}

// ReadHits parses a tab separated hit table with a header row, as produced
// by 'mmseqs convertalis --format-mode 4' with the hitColumns schema.
func ReadHits(r io.Reader) ([]Hit, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = len(hitColumns)

	header, err := tsv.Read()
	if err == io.EOF {
		return []Hit{}, nil
	} else if err != nil {
		return nil, err
	}
	for i, name := range hitColumns {
		if header[i] != name {
			return nil, fmt.Errorf("Unexpected hit table column %d: "+
				"got '%s', want '%s'.", i, header[i], name)
		}
	}

	hits := make([]Hit, 0, 100)
	for {
		record, err := tsv.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		hit, err := parseHit(record)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// WriteHits writes a tab separated hit table with a header row, in the same
// format ReadHits parses.
func WriteHits(w io.Writer, hits []Hit) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	if err := tsv.Write(hitColumns); err != nil {
		return err
	}
	for _, h := range hits {
		record := []string{
			h.Query, h.Target,
			strconv.FormatFloat(h.Fident, 'f', 3, 64),
			strconv.Itoa(h.AlnLen), strconv.Itoa(h.Mismatch),
			strconv.Itoa(h.GapOpen),
			strconv.Itoa(h.QStart), strconv.Itoa(h.QEnd),
			strconv.Itoa(h.TStart), strconv.Itoa(h.TEnd),
			strconv.FormatFloat(h.EValue, 'E', 3, 64),
			strconv.FormatFloat(h.Bits, 'f', 0, 64),
			h.QAln, h.TAln,
		}
		if err := tsv.Write(record); err != nil {
			return err
		}
	}
	tsv.Flush()
	return tsv.Error()
}

func parseHit(record []string) (Hit, error) {
	var hit Hit
	var err error

	hit.Query, hit.Target = record[0], record[1]
	hit.QAln, hit.TAln = record[12], record[13]

	floats := []struct {
		field *float64
		col   int
	}{
		{&hit.Fident, 2}, {&hit.EValue, 10}, {&hit.Bits, 11},
	}
	for _, f := range floats {
		if *f.field, err = strconv.ParseFloat(record[f.col], 64); err != nil {
			return hit, fmt.Errorf("Bad '%s' value '%s': %s",
				hitColumns[f.col], record[f.col], err)
		}
	}

	ints := []struct {
		field *int
		col   int
	}{
		{&hit.AlnLen, 3}, {&hit.Mismatch, 4}, {&hit.GapOpen, 5},
		{&hit.QStart, 6}, {&hit.QEnd, 7}, {&hit.TStart, 8}, {&hit.TEnd, 9},
	}
	for _, f := range ints {
		if *f.field, err = strconv.Atoi(record[f.col]); err != nil {
			return hit, fmt.Errorf("Bad '%s' value '%s': %s",
				hitColumns[f.col], record[f.col], err)
		}
	}
	return hit, nil
}

// Filter returns the hits with sequence identity at least minIdent and
// e-value at most maxEValue. A zero maxEValue disables the e-value bound.
func (r *SearchResult) Filter(minIdent, maxEValue float64) []Hit {
	kept := make([]Hit, 0, len(r.Hits))
	for _, h := range r.Hits {
		if h.Fident < minIdent {
			continue
		}
		if maxEValue > 0 && h.EValue > maxEValue {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

// Best returns at most k hits per query, preferring higher sequence
// identity and breaking ties with lower e-value. The relative order of
// queries follows their first appearance in the hit table.
func (r *SearchResult) Best(k int) []Hit {
	byQuery := make(map[string][]Hit, len(r.Hits))
	order := make([]string, 0, len(r.Hits))
	for _, h := range r.Hits {
		if _, ok := byQuery[h.Query]; !ok {
			order = append(order, h.Query)
		}
		byQuery[h.Query] = append(byQuery[h.Query], h)
	}

	best := make([]Hit, 0, len(order)*k)
	for _, query := range order {
		hits := byQuery[query]
		sort.SliceStable(hits, func(i, j int) bool {
			if hits[i].Fident != hits[j].Fident {
				return hits[i].Fident > hits[j].Fident
			}
			return hits[i].EValue < hits[j].EValue
		})
		if len(hits) > k {
			hits = hits[:k]
		}
		best = append(best, hits...)
	}
	return best
}

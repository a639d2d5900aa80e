package mmseqs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = strings.Join([]string{
	"query\ttarget\tfident\talnlen\tmismatch\tgapopen\tqstart\tqend\t" +
		"tstart\ttend\tevalue\tbits\tqaln\ttaln",
	"q1\tAF-P1.pdb\t0.850\t5\t0\t1\t1\t5\t1\t4\t1.200E-10\t250\tABCDE\tAB-DE",
	"q1\tAF-P2.pdb\t0.400\t5\t3\t0\t1\t5\t1\t5\t2.000E-03\t80\tABCDE\tABCDE",
	"q2\tAF-P1.pdb\t0.600\t4\t1\t0\t1\t4\t2\t5\t5.000E-06\t120\tAB-D\tABCD",
}, "\n") + "\n"

func TestReadHits(t *testing.T) {
	hits, err := ReadHits(strings.NewReader(testTable))
	require.NoError(t, err)
	require.Len(t, hits, 3)

	first := hits[0]
	assert.Equal(t, "q1", first.Query)
	assert.Equal(t, "AF-P1.pdb", first.Target)
	assert.Equal(t, 0.85, first.Fident)
	assert.Equal(t, 5, first.AlnLen)
	assert.Equal(t, 0, first.Mismatch)
	assert.Equal(t, 1, first.GapOpen)
	assert.Equal(t, 1.2e-10, first.EValue)
	assert.Equal(t, 250.0, first.Bits)
	assert.Equal(t, "ABCDE", first.QAln)
	assert.Equal(t, "AB-DE", first.TAln)
}

func TestReadHitsEmpty(t *testing.T) {
	hits, err := ReadHits(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestReadHitsBadHeader(t *testing.T) {
	table := strings.Replace(testTable, "fident", "pident", 1)
	_, err := ReadHits(strings.NewReader(table))
	assert.Error(t, err)
}

func TestWriteHitsRoundTrip(t *testing.T) {
	hits, err := ReadHits(strings.NewReader(testTable))
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, WriteHits(buf, hits))

	again, err := ReadHits(buf)
	require.NoError(t, err)
	assert.Equal(t, hits, again)
}

func TestFilter(t *testing.T) {
	hits, err := ReadHits(strings.NewReader(testTable))
	require.NoError(t, err)
	result := &SearchResult{Hits: hits}

	kept := result.Filter(0.5, 0)
	require.Len(t, kept, 2)
	assert.Equal(t, "q1", kept[0].Query)
	assert.Equal(t, "q2", kept[1].Query)

	kept = result.Filter(0, 1e-4)
	require.Len(t, kept, 2)
	for _, h := range kept {
		assert.LessOrEqual(t, h.EValue, 1e-4)
	}
}

func TestBest(t *testing.T) {
	hits, err := ReadHits(strings.NewReader(testTable))
	require.NoError(t, err)
	result := &SearchResult{Hits: hits}

	best := result.Best(1)
	require.Len(t, best, 2)
	// q1's best hit has the higher identity; q2 keeps its only hit.
	assert.Equal(t, "q1", best[0].Query)
	assert.Equal(t, 0.85, best[0].Fident)
	assert.Equal(t, "q2", best[1].Query)
}

func TestSensitivityRange(t *testing.T) {
	conf := SearchDefault
	conf.Sensitivity = 0.5
	_, err := conf.Run("does-not-matter.fasta", Database("db"))
	assert.Error(t, err)
}

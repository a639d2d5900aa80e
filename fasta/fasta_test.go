package fasta

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bioinf-mcb/mdeepfri/seq"
)

var testFasta = `>prot1 some description
MKVLAA
GIVEQ
; an old-style comment

>prot2
ACDEFGHIK
`

func TestReadAll(t *testing.T) {
	seqs, err := NewReader(strings.NewReader(testFasta)).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %s", err)
	}
	if len(seqs) != 2 {
		t.Fatalf("Read %d sequences, but should be 2.", len(seqs))
	}

	answers := []seq.Sequence{
		{Name: "prot1 some description",
			Residues: []seq.Residue("MKVLAAGIVEQ")},
		{Name: "prot2", Residues: []seq.Residue("ACDEFGHIK")},
	}
	for i := range answers {
		if seqs[i].Name != answers[i].Name {
			t.Fatalf("Sequence %d has name '%s', but should be '%s'.",
				i, seqs[i].Name, answers[i].Name)
		}
		if string(bytesOf(seqs[i])) != string(bytesOf(answers[i])) {
			t.Fatalf("Sequence %d is '%s', but should be '%s'.",
				i, bytesOf(seqs[i]), bytesOf(answers[i]))
		}
	}
}

func TestReadAllMap(t *testing.T) {
	byName, err := NewReader(strings.NewReader(testFasta)).ReadAllMap()
	if err != nil {
		t.Fatalf("ReadAllMap: %s", err)
	}
	if _, ok := byName["prot1"]; !ok {
		t.Fatalf("Names should be truncated at whitespace; keys are %v.",
			keys(byName))
	}
}

func TestReadEmpty(t *testing.T) {
	seqs, err := NewReader(strings.NewReader("")).ReadAll()
	if err != nil {
		t.Fatalf("An empty input is not an error, got: %s", err)
	}
	if len(seqs) != 0 {
		t.Fatalf("An empty input should yield no sequences, got %d.",
			len(seqs))
	}
}

func TestReadHeaderless(t *testing.T) {
	if _, err := NewReader(strings.NewReader("MKVLAA\n")).ReadAll(); err == nil {
		t.Fatalf("Sequence data before any header should be an error.")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	seqs, err := NewReader(strings.NewReader(testFasta)).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %s", err)
	}

	buf := new(bytes.Buffer)
	w := NewWriter(buf)
	w.Columns = 5
	if err := w.WriteAll(seqs); err != nil {
		t.Fatalf("WriteAll: %s", err)
	}

	again, err := NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll of written output: %s", err)
	}
	if len(again) != len(seqs) {
		t.Fatalf("Round trip changed the sequence count: %d != %d.",
			len(again), len(seqs))
	}
	for i := range seqs {
		if string(bytesOf(again[i])) != string(bytesOf(seqs[i])) {
			t.Fatalf("Round trip changed sequence %d: '%s' != '%s'.",
				i, bytesOf(again[i]), bytesOf(seqs[i]))
		}
	}
}

func bytesOf(s seq.Sequence) []byte {
	bs := make([]byte, len(s.Residues))
	for i, r := range s.Residues {
		bs[i] = byte(r)
	}
	return bs
}

func keys(m map[string]seq.Sequence) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}

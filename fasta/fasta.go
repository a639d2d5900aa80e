// Package fasta provides reading and writing of FASTA formatted sequence
// files, with transparent gzip decompression for compressed inputs.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bioinf-mcb/mdeepfri/seq"
)

// A Reader reads FASTA entries from an underlying io.Reader.
type Reader struct {
	buf  *bufio.Reader
	line int
}

// NewReader creates a new FASTA reader from the reader provided.
func NewReader(r io.Reader) *Reader {
	return &Reader{buf: bufio.NewReader(r)}
}

// Open creates a FASTA reader from a file path. If the file name ends with
// ".gz", gzip decompression is used. The caller is responsible for calling
// the returned close function.
func Open(fileName string) (*Reader, func() error, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(fileName, ".gz") {
		greader, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		closer := func() error {
			greader.Close()
			return f.Close()
		}
		return NewReader(greader), closer, nil
	}
	return NewReader(f), f.Close, nil
}

// ReadAll reads every sequence remaining in the input. A FASTA file with no
// entries yields an empty slice, not an error.
func (r *Reader) ReadAll() ([]seq.Sequence, error) {
	seqs := make([]seq.Sequence, 0, 10)
	var cur *seq.Sequence
	for {
		line, err := r.buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		r.line++

		trimmed := strings.TrimSpace(line)
		switch {
		case len(trimmed) == 0:
			// blank lines are allowed anywhere
		case trimmed[0] == '>':
			seqs = append(seqs, seq.Sequence{
				Name:     strings.TrimSpace(trimmed[1:]),
				Residues: make([]seq.Residue, 0, 100),
			})
			cur = &seqs[len(seqs)-1]
		case trimmed[0] == ';':
			// old-style comment line
		default:
			if cur == nil {
				return nil, fmt.Errorf("Line %d contains sequence data "+
					"before any '>' header.", r.line)
			}
			for i := 0; i < len(trimmed); i++ {
				cur.Residues = append(cur.Residues, seq.Residue(trimmed[i]))
			}
		}

		if err == io.EOF {
			break
		}
	}
	return seqs, nil
}

// ReadAllMap reads every sequence and returns them keyed by name. Names are
// truncated at the first whitespace, matching the identifiers that sequence
// search tools report.
func (r *Reader) ReadAllMap() (map[string]seq.Sequence, error) {
	seqs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]seq.Sequence, len(seqs))
	for _, s := range seqs {
		name := s.Name
		if i := strings.IndexAny(name, " \t"); i >= 0 {
			name = name[:i]
		}
		byName[name] = s
	}
	return byName, nil
}

// A Writer writes FASTA entries to an underlying io.Writer.
type Writer struct {
	w io.Writer

	// Columns sets the maximum line width of sequence data. A value of 0
	// writes each sequence on a single line.
	Columns int
}

// NewWriter creates a new FASTA writer with a line width of 60 columns.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, Columns: 60}
}

// Write writes a single FASTA entry.
func (w *Writer) Write(s seq.Sequence) error {
	if _, err := fmt.Fprintf(w.w, ">%s\n", s.Name); err != nil {
		return err
	}
	residues := make([]byte, len(s.Residues))
	for i, r := range s.Residues {
		residues[i] = byte(r)
	}
	if w.Columns <= 0 {
		_, err := fmt.Fprintf(w.w, "%s\n", residues)
		return err
	}
	for start := 0; start < len(residues); start += w.Columns {
		end := start + w.Columns
		if end > len(residues) {
			end = len(residues)
		}
		if _, err := fmt.Fprintf(w.w, "%s\n", residues[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll writes each sequence in order.
func (w *Writer) WriteAll(seqs []seq.Sequence) error {
	for _, s := range seqs {
		if err := w.Write(s); err != nil {
			return err
		}
	}
	return nil
}

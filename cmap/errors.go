package cmap

import (
	"errors"
	"fmt"
)

// ErrEmptyStructure is returned when a structure yields zero residues and
// therefore cannot produce a contact map. Batch callers should skip the
// offending hit rather than abort.
var ErrEmptyStructure = errors.New("structure has no residues")

// ErrConfig tags errors caused by out-of-range parameters. Parameters are
// validated eagerly at call entry, never mid-scan. Use errors.Is to test
// for it.
var ErrConfig = errors.New("invalid contact map configuration")

// AlignmentLengthError is returned by Project when the gapped query and
// target alignment strings differ in length.
type AlignmentLengthError struct {
	QueryLen, TargetLen int
}

func (e AlignmentLengthError) Error() string {
	return fmt.Sprintf("alignment strings differ in length: query is %d, "+
		"target is %d", e.QueryLen, e.TargetLen)
}

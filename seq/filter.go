package seq

// The bounds on query protein length imposed by the downstream prediction
// model.
const (
	MinQueryLength = 60
	MaxQueryLength = 1000
)

// FilterLength partitions sequences into those whose lengths fall within
// [minLen, maxLen] and those that do not. A zero maxLen means no upper
// bound. The relative order of sequences is preserved in both partitions.
func FilterLength(seqs []Sequence, minLen, maxLen int) (kept, skipped []Sequence) {
	kept = make([]Sequence, 0, len(seqs))
	skipped = make([]Sequence, 0)
	for _, s := range seqs {
		if s.Len() < minLen || (maxLen > 0 && s.Len() > maxLen) {
			skipped = append(skipped, s)
		} else {
			kept = append(kept, s)
		}
	}
	return kept, skipped
}

package knot

import "slices"

// SimplifyKinks removes Reidemeister I kinks: pairs of cyclically adjacent
// entries with equal magnitude and opposite sign. Removal repeats until no
// kink remains, so a sequence that is nothing but nested kinks collapses to
// the unknot. Adjacency is cyclic - the first and last entries form a
// removable pair too.
//
// The order in which kinks are removed does not affect the result: every
// removal shrinks the sequence by exactly two and adjacency is re-derived
// from the shrunken sequence on the next pass. The loop terminates because
// the length strictly decreases.
//
// The result is a new value; the receiver is never modified. Kink removal
// changes crossing number and writhe, which is expected - both are diagram
// quantities, and the whole point of the move is to discard diagram noise.
func (g GaussCode) SimplifyKinks() GaussCode {
	seq := slices.Clone(g.seq)
	for {
		i, ok := findKink(seq)
		if !ok {
			return GaussCode{seq: seq}
		}
		j := (i + 1) % len(seq)
		if i < j {
			seq = append(seq[:i], seq[i+2:]...)
		} else {
			// Wrap-around pair: drop the last and first entries.
			seq = seq[1 : len(seq)-1]
		}
	}
}

// findKink returns the index of the first entry of a cyclically adjacent
// opposite-sign same-magnitude pair, scanning linear adjacencies first and
// the wrap-around pair last.
func findKink(seq []int) (int, bool) {
	for i := 0; i+1 < len(seq); i++ {
		if seq[i] == -seq[i+1] {
			return i, true
		}
	}
	if len(seq) >= 2 && seq[len(seq)-1] == -seq[0] {
		return len(seq) - 1, true
	}
	return 0, false
}

package knot

import "slices"

// Canonical returns the representative of the diagram under cyclic rotation
// and consistent relabeling of crossings: the lexicographically smallest
// sequence obtained by normalizing each of the n cyclic rotations. Two codes
// that are rotations of each other, with crossings numbered differently,
// share a canonical form, because every rotation is enumerated and each is
// normalized before comparison.
//
// Cost is quadratic in the sequence length (n rotations, each normalized and
// compared in O(n)). That is fine for diagrams up to a few hundred crossings;
// batch pipelines should treat canonicalization as their throughput-limiting
// step and cache results by content hash.
func (g GaussCode) Canonical() GaussCode {
	n := len(g.seq)
	if n == 0 {
		return GaussCode{}
	}

	best := g.Normalize().seq
	rot := make([]int, n)
	for shift := 1; shift < n; shift++ {
		copy(rot, g.seq[shift:])
		copy(rot[n-shift:], g.seq[:shift])
		cand := (GaussCode{seq: rot}).Normalize().seq
		if slices.Compare(cand, best) < 0 {
			best = cand
		}
	}
	return GaussCode{seq: best}
}

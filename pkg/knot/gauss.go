package knot

import "slices"

// GaussCode is an immutable knot diagram encoded as a signed crossing
// sequence. The zero value is the unknot (empty sequence) and is ready to use.
//
// A well-formed code contains each crossing magnitude exactly twice, once
// positive and once negative. Construction is deliberately permissive: [New]
// accepts any sequence of nonzero integers and never fails, and callers that
// need strictness check [GaussCode.WellFormed] themselves. This keeps
// exploratory input (partial traces, hand-typed codes) usable while making
// the validity rule explicit at the boundaries that care.
type GaussCode struct {
	seq []int
}

// New constructs a GaussCode from a crossing sequence. The input slice is
// copied, so later mutation of seq does not affect the returned value.
// Zero entries are kept as-is and will fail [GaussCode.WellFormed]; New
// itself never rejects input.
func New(seq []int) GaussCode {
	if len(seq) == 0 {
		return GaussCode{}
	}
	return GaussCode{seq: slices.Clone(seq)}
}

// Unknot returns the trivial diagram with no crossings.
func Unknot() GaussCode { return GaussCode{} }

// Sequence returns a copy of the underlying crossing sequence.
// The copy can be modified freely without affecting the code.
func (g GaussCode) Sequence() []int { return slices.Clone(g.seq) }

// Len returns the number of entries in the sequence. For a well-formed code
// this is twice the crossing number, not the crossing number itself.
func (g GaussCode) Len() int { return len(g.seq) }

// Equal reports element-wise equality of the two sequences. Two labelings of
// the same topological diagram are not Equal; use [DiagramEquivalent] for
// comparison up to rotation and relabeling.
func (g GaussCode) Equal(o GaussCode) bool { return slices.Equal(g.seq, o.seq) }

// WellFormed reports whether every magnitude appears exactly twice in the
// sequence, once with each sign, and no entry is zero. The empty sequence is
// well-formed (it is the unknot).
func (g GaussCode) WellFormed() bool {
	type group struct {
		pos, neg int
	}
	groups := make(map[int]group, len(g.seq)/2)
	for _, v := range g.seq {
		if v == 0 {
			return false
		}
		m := v
		if m < 0 {
			m = -m
		}
		grp := groups[m]
		if v > 0 {
			grp.pos++
		} else {
			grp.neg++
		}
		groups[m] = grp
	}
	for _, grp := range groups {
		if grp.pos != 1 || grp.neg != 1 {
			return false
		}
	}
	return true
}

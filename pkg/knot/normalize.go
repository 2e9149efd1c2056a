package knot

// Normalize relabels crossing magnitudes to consecutive positive integers
// starting at 1, assigned in order of first appearance. Signs and positions
// are untouched - Normalize never reorders elements. Two sequences that are
// identical up to a consistent renaming of magnitudes normalize to the same
// result, which makes normalized codes directly comparable with
// [GaussCode.Equal].
//
// The unknot normalizes to itself. The result is a new value and never
// aliases the receiver.
func (g GaussCode) Normalize() GaussCode {
	if len(g.seq) == 0 {
		return GaussCode{}
	}
	labels := make(map[int]int, len(g.seq)/2)
	next := 1
	out := make([]int, len(g.seq))
	for i, v := range g.seq {
		m := v
		if m < 0 {
			m = -m
		}
		label, ok := labels[m]
		if !ok {
			label = next
			labels[m] = label
			next++
		}
		if v < 0 {
			out[i] = -label
		} else {
			out[i] = label
		}
	}
	return GaussCode{seq: out}
}

package knot

// Mirror returns the diagram's reflection: every entry's sign is negated,
// magnitudes and order are preserved. Mirror is an involution -
// g.Mirror().Mirror() equals g.
func (g GaussCode) Mirror() GaussCode {
	out := make([]int, len(g.seq))
	for i, v := range g.seq {
		out[i] = -v
	}
	return GaussCode{seq: out}
}

// DiagramEquivalent reports whether two diagrams are identical up to cyclic
// rotation of the trace and consistent renumbering of crossings. Diagrams
// with different crossing numbers are rejected without canonicalizing.
//
// This is equivalence of diagrams, not of knots: Reidemeister II and III
// moves are not considered, so two diagrams of the same knot can compare
// false. The relation is reflexive, symmetric, and transitive on diagrams.
func DiagramEquivalent(a, b GaussCode) bool {
	if a.CrossingNumber() != b.CrossingNumber() {
		return false
	}
	return a.Canonical().Equal(b.Canonical())
}

// Isotopic reports whether the two diagrams become equivalent after removing
// all Reidemeister I kinks from each. It detects exactly the equivalences
// reachable through kink removal plus rotation and relabeling, and misses
// any that require Reidemeister II or III moves. It is a heuristic and must
// not be relied on as a complete isotopy test; a false result proves nothing
// about the underlying knots.
func Isotopic(a, b GaussCode) bool {
	return DiagramEquivalent(a.SimplifyKinks(), b.SimplifyKinks())
}

// Amphichiral reports whether the diagram is equivalent to its own mirror
// image. Like [Isotopic], this is a diagram-level symmetry check, not a
// proof of topological amphichirality.
func (g GaussCode) Amphichiral() bool {
	return DiagramEquivalent(g, g.Mirror())
}

package knot

import (
	"crypto/sha256"
	"encoding/hex"
)

// CrossingNumber returns the number of distinct crossing magnitudes in the
// diagram, 0 for the unknot. This is the crossing count of this particular
// diagram; it is not the minimal crossing number of the underlying knot.
func (g GaussCode) CrossingNumber() int {
	seen := make(map[int]struct{}, len(g.seq)/2)
	for _, v := range g.seq {
		m := v
		if m < 0 {
			m = -m
		}
		seen[m] = struct{}{}
	}
	return len(seen)
}

// Writhe returns the sum over crossings of the sign seen at each crossing's
// first occurrence, 0 for the unknot. Each crossing contributes exactly once.
// Like [GaussCode.CrossingNumber] this is diagram-dependent: applying a
// Reidemeister I move changes the writhe.
func (g GaussCode) Writhe() int {
	first := make(map[int]int, len(g.seq)/2)
	writhe := 0
	for _, v := range g.seq {
		m := v
		sign := 1
		if v < 0 {
			m = -v
			sign = -1
		}
		if s, ok := first[m]; ok {
			writhe += s
		} else {
			first[m] = sign
		}
	}
	return writhe
}

// ContentHash returns the SHA-256 digest of the textual encoding of the raw
// sequence as a 64-character hex string. Identical sequences hash identically;
// rotated or relabeled diagrams generally do not. The hash deduplicates exact
// sequences only - use [DiagramEquivalent] for equivalence up to rotation and
// relabeling.
func (g GaussCode) ContentHash() string {
	sum := sha256.Sum256([]byte(g.String()))
	return hex.EncodeToString(sum[:])
}

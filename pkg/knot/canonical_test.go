package knot

import (
	"slices"
	"testing"
)

// rotate returns seq cyclically shifted left by k.
func rotate(seq []int, k int) []int {
	n := len(seq)
	out := make([]int, n)
	copy(out, seq[k%n:])
	copy(out[n-k%n:], seq[:k%n])
	return out
}

func TestCanonical_RotationInvariant(t *testing.T) {
	trefoil := []int{1, -2, 3, -1, 2, -3}
	want := New(trefoil).Canonical()

	for k := 1; k < len(trefoil); k++ {
		got := New(rotate(trefoil, k)).Canonical()
		if !got.Equal(want) {
			t.Errorf("rotation %d: Canonical() = %s, want %s", k, got, want)
		}
	}
}

func TestCanonical_RelabelInvariant(t *testing.T) {
	a := New([]int{1, -2, 3, -1, 2, -3})
	b := New([]int{5, -10, 15, -5, 10, -15})

	if !a.Canonical().Equal(b.Canonical()) {
		t.Errorf("relabeled diagrams disagree: %s vs %s", a.Canonical(), b.Canonical())
	}
}

func TestCanonical_RotatedAndRelabeled(t *testing.T) {
	base := []int{1, -2, 3, -4, 2, -1, 4, -3}
	want := New(base).Canonical()

	// Relabel 1..4 -> 9,7,5,3 and rotate: the canonical form must not move.
	relabel := map[int]int{1: 9, 2: 7, 3: 5, 4: 3}
	renamed := make([]int, len(base))
	for i, v := range base {
		m := v
		if m < 0 {
			m = -m
		}
		if v < 0 {
			renamed[i] = -relabel[m]
		} else {
			renamed[i] = relabel[m]
		}
	}
	for k := 0; k < len(renamed); k++ {
		got := New(rotate(renamed, k)).Canonical()
		if !got.Equal(want) {
			t.Errorf("rotation %d of relabeled code: Canonical() = %s, want %s", k, got, want)
		}
	}
}

func TestCanonical_TrefoilValue(t *testing.T) {
	// The minimum over all normalized rotations of the trefoil starts with a
	// negative entry, since -1 sorts before 1.
	got := New([]int{1, -2, 3, -1, 2, -3}).Canonical().Sequence()
	want := []int{-1, 2, -3, 1, -2, 3}
	if !slices.Equal(got, want) {
		t.Errorf("Canonical() = %v, want %v", got, want)
	}
}

func TestCanonical_Unknot(t *testing.T) {
	if got := Unknot().Canonical(); got.Len() != 0 {
		t.Errorf("Canonical(unknot) = %s, want []", got)
	}
}

func TestCanonical_Idempotent(t *testing.T) {
	g := New([]int{3, -1, 2, -3, 1, -2})
	once := g.Canonical()
	if !once.Canonical().Equal(once) {
		t.Errorf("Canonical not idempotent: %s vs %s", once.Canonical(), once)
	}
}

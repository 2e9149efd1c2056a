package knot

import (
	"testing"
)

func TestWellFormed(t *testing.T) {
	tests := []struct {
		name string
		seq  []int
		want bool
	}{
		{"Unknot", nil, true},
		{"Trefoil", []int{1, -2, 3, -1, 2, -3}, true},
		{"FigureEight", []int{1, -2, 3, -4, 2, -1, 4, -3}, true},
		{"SingleLeg", []int{1}, false},
		{"SameSignTwice", []int{1, 1}, false},
		{"ThreeLegs", []int{1, -1, 1}, false},
		{"ZeroEntry", []int{1, 0, -1, 0}, false},
		{"MissingPartner", []int{1, -2, -1}, false},
		{"NonConsecutiveLabels", []int{5, -10, 15, -5, 10, -15}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.seq).WellFormed(); got != tt.want {
				t.Errorf("WellFormed(%v) = %v, want %v", tt.seq, got, tt.want)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	seq := []int{1, -1}
	g := New(seq)
	seq[0] = 99

	if got := g.Sequence(); got[0] != 1 {
		t.Errorf("Sequence()[0] = %d, input mutation leaked into the value", got[0])
	}
}

func TestSequence_CopiesOut(t *testing.T) {
	g := New([]int{1, -1})
	out := g.Sequence()
	out[0] = 99

	if again := g.Sequence(); again[0] != 1 {
		t.Errorf("Sequence()[0] = %d after mutating a previous copy", again[0])
	}
}

func TestLen(t *testing.T) {
	if got := Unknot().Len(); got != 0 {
		t.Errorf("Unknot().Len() = %d, want 0", got)
	}
	// Len counts entries, not crossings: the trefoil has 3 crossings, 6 entries.
	if got := New([]int{1, -2, 3, -1, 2, -3}).Len(); got != 6 {
		t.Errorf("Len() = %d, want 6", got)
	}
}

func TestEqual(t *testing.T) {
	a := New([]int{1, -2, 3, -1, 2, -3})
	b := New([]int{1, -2, 3, -1, 2, -3})
	c := New([]int{5, -10, 15, -5, 10, -15}) // same diagram, relabeled

	if !a.Equal(b) {
		t.Error("identical sequences must be Equal")
	}
	if a.Equal(c) {
		t.Error("Equal must be structural: relabeled diagrams are not Equal")
	}
	if !Unknot().Equal(New(nil)) {
		t.Error("unknot must equal the empty code")
	}
}

func TestZeroValueIsUnknot(t *testing.T) {
	var g GaussCode
	if !g.WellFormed() {
		t.Error("zero value must be well-formed")
	}
	if g.CrossingNumber() != 0 || g.Writhe() != 0 {
		t.Error("zero value must have zero invariants")
	}
	if g.String() != "[]" {
		t.Errorf("zero value String() = %q, want []", g.String())
	}
}

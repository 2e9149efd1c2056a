package knot

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		seq  []int
		want []int
	}{
		{"Unknot", nil, nil},
		{"AlreadyNormal", []int{1, -2, 3, -1, 2, -3}, []int{1, -2, 3, -1, 2, -3}},
		{"SparseLabels", []int{5, -10, 15, -5, 10, -15}, []int{1, -2, 3, -1, 2, -3}},
		{"NegativeFirstSeen", []int{-7, 7}, []int{-1, 1}},
		{"ReverseOrderLabels", []int{3, -2, 1, -3, 2, -1}, []int{1, -2, 3, -1, 2, -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.seq).Normalize().Sequence()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.seq, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	g := New([]int{40, -2, 7, -40, 2, -7})
	once := g.Normalize()
	twice := once.Normalize()
	if !once.Equal(twice) {
		t.Errorf("Normalize not idempotent: %s then %s", once, twice)
	}
}

func TestNormalize_DoesNotMutateReceiver(t *testing.T) {
	g := New([]int{5, -10, 15, -5, 10, -15})
	_ = g.Normalize()
	if !slices.Equal(g.Sequence(), []int{5, -10, 15, -5, 10, -15}) {
		t.Error("Normalize mutated its receiver")
	}
}

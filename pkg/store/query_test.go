package store

import (
	"context"
	"testing"

	"github.com/mgeier/knotwork/pkg/knot"
)

func seedCatalog(t *testing.T) *Memory {
	t.Helper()
	ctx := context.Background()
	m := NewMemory()
	t.Cleanup(func() { m.Close() })

	fixtures := []struct {
		name string
		seq  []int
		meta map[string]string
	}{
		{"trefoil", []int{1, -2, 3, -1, 2, -3}, map[string]string{"family": "torus"}},
		{"trefoil-relabeled", []int{5, -10, 15, -5, 10, -15}, map[string]string{"family": "torus"}},
		{"figure-eight", []int{1, -2, 3, -4, 2, -1, 4, -3}, map[string]string{"family": "twist"}},
		{"unknot", nil, nil},
	}
	for _, f := range fixtures {
		if _, err := m.Create(ctx, f.name, knot.New(f.seq), f.meta); err != nil {
			t.Fatalf("seed %s: %v", f.name, err)
		}
	}
	return m
}

func TestQuery_Predicates(t *testing.T) {
	m := seedCatalog(t)
	ctx := context.Background()

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{
			name: "Empty",
			q:    nil,
			want: []string{"figure-eight", "trefoil", "trefoil-relabeled", "unknot"},
		},
		{
			name: "CrossingsEquals",
			q:    Query{FieldEquals{Field: FieldCrossings, Value: 3}},
			want: []string{"trefoil", "trefoil-relabeled"},
		},
		{
			name: "WritheEquals",
			q:    Query{FieldEquals{Field: FieldWrithe, Value: 0}},
			want: []string{"figure-eight", "unknot"},
		},
		{
			name: "CrossingsRange",
			q:    Query{FieldRange{Field: FieldCrossings, Min: 1, Max: 3}},
			want: []string{"trefoil", "trefoil-relabeled"},
		},
		{
			name: "CrossingsIn",
			q:    Query{FieldIn{Field: FieldCrossings, Values: []int{0, 4}}},
			want: []string{"figure-eight", "unknot"},
		},
		{
			name: "NameGlob",
			q:    Query{NamePattern{Pattern: "trefoil*"}},
			want: []string{"trefoil", "trefoil-relabeled"},
		},
		{
			name: "MetadataEquals",
			q:    Query{MetadataEquals{Key: "family", Value: "twist"}},
			want: []string{"figure-eight"},
		},
		{
			name: "Conjunction",
			q: Query{
				FieldEquals{Field: FieldCrossings, Value: 3},
				NamePattern{Pattern: "*relabeled"},
			},
			want: []string{"trefoil-relabeled"},
		},
		{
			name: "NoMatches",
			q:    Query{FieldEquals{Field: FieldCrossings, Value: 99}},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.Query(ctx, tt.q)
			if err != nil {
				t.Fatalf("Query error: %v", err)
			}
			got := names(out)
			if len(got) != len(tt.want) {
				t.Fatalf("Query = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Query = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestQuery_HashEqualsFindsExactDuplicatesOnly(t *testing.T) {
	m := seedCatalog(t)
	ctx := context.Background()

	hash := knot.New([]int{1, -2, 3, -1, 2, -3}).ContentHash()
	out, err := m.Query(ctx, Query{HashEquals{Hash: hash}})
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	// trefoil-relabeled is diagram-equivalent but has a different raw
	// sequence, so it must not match.
	if len(out) != 1 || out[0].Name != "trefoil" {
		t.Errorf("Query = %v, want [trefoil]", names(out))
	}
}

func TestNamePattern_MalformedPattern(t *testing.T) {
	p := NamePattern{Pattern: "[unclosed"}
	if p.Matches(KnotRecord{Name: "anything"}) {
		t.Error("malformed glob must match nothing")
	}
}

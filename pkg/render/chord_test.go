package render

import (
	"strings"
	"testing"

	"github.com/mgeier/knotwork/pkg/knot"
)

func TestToDOT_Trefoil(t *testing.T) {
	dot := ToDOT(knot.New([]int{1, -2, 3, -1, 2, -3}), Options{Title: "trefoil"})

	if !strings.HasPrefix(dot, "graph chord {") {
		t.Errorf("DOT does not open an undirected graph:\n%s", dot)
	}
	if !strings.Contains(dot, "layout=circo") {
		t.Error("missing circular layout directive")
	}
	if !strings.Contains(dot, `label="trefoil"`) {
		t.Error("missing title label")
	}

	// Six positions on the circle.
	for _, node := range []string{`p0 [label="1o"]`, `p1 [label="2u"]`, `p2 [label="3o"]`,
		`p3 [label="1u"]`, `p4 [label="2o"]`, `p5 [label="3u"]`} {
		if !strings.Contains(dot, node) {
			t.Errorf("missing node %q", node)
		}
	}

	// The closing circle edge and one chord per crossing.
	if !strings.Contains(dot, "p5 -- p0;") {
		t.Error("missing wrap-around circle edge")
	}
	if got := strings.Count(dot, "style=dashed"); got != 3 {
		t.Errorf("chord count = %d, want 3", got)
	}
	if !strings.Contains(dot, "p0 -- p3 [style=dashed") {
		t.Error("missing chord between the legs of crossing 1")
	}
}

func TestToDOT_Unknot(t *testing.T) {
	dot := ToDOT(knot.Unknot(), Options{})
	if !strings.Contains(dot, "p0") {
		t.Errorf("unknot should render a single node:\n%s", dot)
	}
	if strings.Contains(dot, "--") {
		t.Errorf("unknot should have no edges:\n%s", dot)
	}
}

func TestToDOT_ChordCountMatchesCrossings(t *testing.T) {
	g := knot.New([]int{1, -2, 3, -4, 2, -1, 4, -3})
	dot := ToDOT(g, Options{})
	if got := strings.Count(dot, "style=dashed"); got != g.CrossingNumber() {
		t.Errorf("chords = %d, want %d", got, g.CrossingNumber())
	}
}

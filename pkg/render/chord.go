// Package render draws Gauss codes as chord diagrams.
//
// A chord diagram places the entries of the code on a circle in trace order
// and connects the two legs of each crossing with a chord. It is the
// standard visual for interlacement structure: two crossings whose chords
// intersect are interlaced in the diagram.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/mgeier/knotwork/pkg/knot"
)

// Options configures chord diagram rendering.
type Options struct {
	// Title is drawn as the graph label, typically the record name.
	Title string
}

// ToDOT converts a Gauss code to Graphviz DOT in circular layout. Positions
// on the trace become nodes, consecutive positions are joined by solid circle
// edges (including the closing wrap-around edge), and the two legs of each
// crossing are joined by a dashed chord. The unknot renders as a single
// unlabeled circle node.
//
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g knot.GaussCode, opts Options) string {
	seq := g.Sequence()

	var buf bytes.Buffer
	buf.WriteString("graph chord {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, fixedsize=true, width=0.45];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
		buf.WriteString("  labelloc=t;\n")
	}
	buf.WriteString("\n")

	if len(seq) == 0 {
		buf.WriteString("  p0 [label=\"\"];\n")
		buf.WriteString("}\n")
		return buf.String()
	}

	for i, v := range seq {
		fmt.Fprintf(&buf, "  p%d [label=%q];\n", i, entryLabel(v))
	}

	buf.WriteString("\n")
	for i := range seq {
		fmt.Fprintf(&buf, "  p%d -- p%d;\n", i, (i+1)%len(seq))
	}

	buf.WriteString("\n")
	for i, v := range seq {
		if v <= 0 {
			continue
		}
		// Chord from the positive leg to its negative partner.
		for j, w := range seq {
			if w == -v {
				fmt.Fprintf(&buf, "  p%d -- p%d [style=dashed, constraint=false];\n", i, j)
				break
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// entryLabel renders a sequence entry as the crossing number with an
// over/under marker: "3o" for the positive leg of crossing 3, "3u" for the
// negative one.
func entryLabel(v int) string {
	if v < 0 {
		return fmt.Sprintf("%du", -v)
	}
	return fmt.Sprintf("%do", v)
}

// RenderSVG renders a DOT chord diagram to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT chord diagram to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

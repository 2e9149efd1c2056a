package knot_test

import (
	"fmt"

	"github.com/mgeier/knotwork/pkg/knot"
)

func ExampleGaussCode_invariants() {
	trefoil := knot.New([]int{1, -2, 3, -1, 2, -3})

	fmt.Println("crossings:", trefoil.CrossingNumber())
	fmt.Println("writhe:", trefoil.Writhe())
	fmt.Println("well-formed:", trefoil.WellFormed())
	// Output:
	// crossings: 3
	// writhe: 1
	// well-formed: true
}

func ExampleGaussCode_Normalize() {
	// Same diagram, crossings numbered 5/10/15 instead of 1/2/3.
	g := knot.New([]int{5, -10, 15, -5, 10, -15})
	fmt.Println(g.Normalize())
	// Output:
	// [1,-2,3,-1,2,-3]
}

func ExampleDiagramEquivalent() {
	trefoil := knot.New([]int{1, -2, 3, -1, 2, -3})
	rotated := knot.New([]int{-2, 3, -1, 2, -3, 1})
	figureEight := knot.New([]int{1, -2, 3, -4, 2, -1, 4, -3})

	fmt.Println(knot.DiagramEquivalent(trefoil, rotated))
	fmt.Println(knot.DiagramEquivalent(trefoil, figureEight))
	// Output:
	// true
	// false
}

func ExampleGaussCode_SimplifyKinks() {
	// A trefoil wearing an extra kink (the adjacent 4,-4 pair).
	g := knot.New([]int{4, -4, 1, -2, 3, -1, 2, -3})
	fmt.Println(g.SimplifyKinks())
	// Output:
	// [1,-2,3,-1,2,-3]
}

func ExampleParse() {
	g, err := knot.Parse("[1,-2,3,-1,2,-3]")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(g.CrossingNumber(), "crossings")
	// Output:
	// 3 crossings
}

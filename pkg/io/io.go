// Package io reads and writes knot collections as flat JSON files.
//
// The collection format is a single object with a "knots" array:
//
//	{
//	  "knots": [
//	    {"name": "trefoil", "code": "[1,-2,3,-1,2,-3]", "metadata": {"family": "torus"}}
//	  ]
//	}
//
// Codes use the textual gauss-code encoding (see [knot.Parse]). Import
// follows the soft validation policy: an entry whose code is syntactically
// valid but not well-formed is kept and flagged rather than rejected, so a
// single bad diagram doesn't abort a bulk import. Syntax errors are hard
// failures.
package io

import (
	"github.com/mgeier/knotwork/pkg/knot"
)

// Entry is one knot in a collection file.
type Entry struct {
	Name     string            // Record name, unique within the collection
	Code     knot.GaussCode    // The decoded diagram
	Metadata map[string]string // Optional annotations
	// WellFormed is false when the code parsed but violates the
	// two-legs-per-crossing rule. The entry is still usable; strict callers
	// skip or reject flagged entries.
	WellFormed bool
}

// collection is the wire shape of a knot collection file.
type collection struct {
	Knots []entry `json:"knots"`
}

type entry struct {
	Name     string            `json:"name"`
	Code     string            `json:"code"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

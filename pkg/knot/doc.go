// Package knot models knot diagrams as Gauss codes and computes lightweight
// invariants over them.
//
// A Gauss code is a sequence of nonzero signed integers recording the order in
// which the strand of a knot passes through its crossings. Each crossing is
// identified by a magnitude that appears exactly twice in the sequence, once
// with each sign; the empty sequence represents the unknot.
//
// # Invariants
//
// The package computes three per-diagram quantities:
//   - [GaussCode.CrossingNumber]: distinct crossings in the diagram
//   - [GaussCode.Writhe]: signed sum over first-seen crossing signs
//   - [GaussCode.ContentHash]: SHA-256 digest of the textual encoding
//
// Crossing number and writhe are properties of the diagram, not of the
// underlying knot: different diagrams of the same knot can disagree on both.
//
// # Equivalence
//
// [DiagramEquivalent] compares canonical forms and therefore identifies
// diagrams that differ only by where the trace starts and how crossings are
// numbered. [Isotopic] additionally removes kinks (Reidemeister I moves)
// before comparing. Neither accounts for Reidemeister II or III moves, so two
// diagrams of a provably identical knot can still compare unequal. They are
// deduplication heuristics, not topological equivalence tests.
//
// # Purity
//
// Every operation is a pure function over immutable values: derived codes are
// freshly allocated and never alias their input. Callers may run independent
// computations concurrently without synchronization.
package knot

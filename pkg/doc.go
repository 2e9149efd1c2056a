// Package pkg provides the core libraries for the knotwork catalog.
//
// # Overview
//
// Knotwork stores knot diagrams given as Gauss codes and computes their
// diagram invariants. The pkg directory is organized by concern:
//
//   - [knot] - the engine: Gauss codes, invariants, canonicalization,
//     kink removal, and equivalence heuristics
//   - [store] - persistence of named diagrams (in-memory and MongoDB)
//   - [cache] - memoization of canonical forms (file, Redis, or disabled)
//   - [io] - flat-file JSON collections for bulk import and export
//   - [pipeline] - batch ingest and deduplication over a store
//   - [render] - chord diagram drawing via Graphviz
//   - [config] - TOML configuration for backend selection
//   - [errors] - structured error codes shared by CLI and API
//   - [observability] - optional instrumentation hooks
//   - [buildinfo] - build-time version information
//
// # Data Flow
//
// The typical path through the system:
//
//	Gauss code text
//	     ↓ knot.Parse
//	GaussCode → invariants → store.KnotRecord
//	     ↓ pipeline (canonical forms, cached)
//	queries, equivalence checks, chord diagrams
//
// The engine in [knot] is pure: no I/O, no globals, deterministic results.
// Everything stateful lives behind the [store.Store] and [cache.Cache]
// interfaces.
package pkg

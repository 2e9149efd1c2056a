// Package store persists knot records keyed by name.
//
// The store treats the engine's invariants as opaque indexed values: records
// arrive with crossing number, writhe, and content hash already computed (see
// [NewRecord]) and no backend ever recomputes them.
//
// Two backends are provided: [Memory] for development and tests, and [Mongo]
// for durable storage. [ReadOnly] wraps any backend and rejects mutation with
// [ErrReadOnly]. Lookups that miss return [ErrNotFound]; a miss is an
// expected outcome, not a storage failure.
package store

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/mgeier/knotwork/pkg/knot"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no record with the requested name exists.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned by Create when the name is already taken.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrReadOnly is returned when a mutation is attempted through a
	// read-only store handle.
	ErrReadOnly = errors.New("store is read-only")
)

// KnotRecord is a named knot diagram with its precomputed invariants.
//
// Extended holds richer invariants supplied by an optional
// [knot.InvariantProvider]; it is nil when no provider was registered, which
// is a normal state rather than an error.
type KnotRecord struct {
	ID        string            // Opaque unique identifier
	Name      string            // Unique human-readable name
	Code      knot.GaussCode    // The diagram itself
	Crossings int               // Diagram crossing number
	Writhe    int               // Diagram writhe
	Hash      string            // Content hash of the raw sequence
	Extended  map[string]any    // Provider-supplied invariants (may be nil)
	Metadata  map[string]string // Free-form key-value annotations
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord builds a record for the given diagram, computing every invariant
// field up front. The metadata map is copied; nil is allowed.
func NewRecord(name string, code knot.GaussCode, metadata map[string]string) KnotRecord {
	now := time.Now().UTC()
	return KnotRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      code,
		Crossings: code.CrossingNumber(),
		Writhe:    code.Writhe(),
		Hash:      code.ContentHash(),
		Metadata:  cloneMetadata(metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the record. GaussCode values are immutable and
// shared; the metadata and extended maps are copied.
func (r KnotRecord) Clone() KnotRecord {
	out := r
	out.Metadata = cloneMetadata(r.Metadata)
	if r.Extended != nil {
		out.Extended = maps.Clone(r.Extended)
	}
	return out
}

func cloneMetadata(m map[string]string) map[string]string {
	if len(m) == 0 {
		return map[string]string{}
	}
	return maps.Clone(m)
}

// Store is the persistence contract for knot records.
//
// Implementations must surface [ErrNotFound] on missing names,
// [ErrDuplicateName] on Create collisions, and must treat the invariant
// fields of incoming records as opaque values.
type Store interface {
	// Create persists a new record for the diagram under the given name and
	// returns it with identifier and timestamps populated.
	Create(ctx context.Context, name string, code knot.GaussCode, metadata map[string]string) (KnotRecord, error)

	// Fetch returns the record with the given name, or ErrNotFound.
	Fetch(ctx context.Context, name string) (KnotRecord, error)

	// Query returns all records matching every predicate in q, ordered by name.
	Query(ctx context.Context, q Query) ([]KnotRecord, error)

	// Delete removes the record with the given name, or returns ErrNotFound.
	Delete(ctx context.Context, name string) error

	// UpdateMetadata merges delta into the record's metadata map and returns
	// the updated record. An empty value in delta removes the key.
	UpdateMetadata(ctx context.Context, name string, delta map[string]string) (KnotRecord, error)

	// UpdateExtended replaces the record's provider-supplied invariants and
	// returns the updated record. A nil map clears the slot.
	UpdateExtended(ctx context.Context, name string, extended map[string]any) (KnotRecord, error)

	// Close releases the backend's resources. Close must be called on every
	// exit path once the handle is no longer needed.
	Close() error
}

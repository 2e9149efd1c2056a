package store

import (
	"path"
	"slices"
)

// Field names an integer invariant column a predicate can filter on.
type Field string

// Filterable invariant fields.
const (
	FieldCrossings Field = "crossings"
	FieldWrithe    Field = "writhe"
)

// Predicate is one filter clause of a [Query]. The variants form a closed
// set: equality, range, and set membership on invariant fields, glob matching
// on the record name, exact matching on the content hash, and metadata
// key-value equality. Backends translate predicates into native filters where
// they can and fall back to in-process evaluation via Matches.
type Predicate interface {
	// Matches reports whether the record satisfies this clause.
	Matches(r KnotRecord) bool
}

// Query is a conjunction of predicates. The empty query matches everything.
type Query []Predicate

// Matches reports whether the record satisfies every predicate.
func (q Query) Matches(r KnotRecord) bool {
	for _, p := range q {
		if !p.Matches(r) {
			return false
		}
	}
	return true
}

// FieldEquals matches records whose field equals Value exactly.
type FieldEquals struct {
	Field Field
	Value int
}

// Matches implements [Predicate].
func (p FieldEquals) Matches(r KnotRecord) bool { return fieldValue(r, p.Field) == p.Value }

// FieldRange matches records whose field lies in [Min, Max], inclusive.
type FieldRange struct {
	Field    Field
	Min, Max int
}

// Matches implements [Predicate].
func (p FieldRange) Matches(r KnotRecord) bool {
	v := fieldValue(r, p.Field)
	return v >= p.Min && v <= p.Max
}

// FieldIn matches records whose field equals one of Values.
type FieldIn struct {
	Field  Field
	Values []int
}

// Matches implements [Predicate].
func (p FieldIn) Matches(r KnotRecord) bool {
	return slices.Contains(p.Values, fieldValue(r, p.Field))
}

// HashEquals matches records with exactly this content hash. Because the
// hash covers the raw sequence, this finds exact duplicates only, not
// diagram-equivalent relabelings.
type HashEquals struct {
	Hash string
}

// Matches implements [Predicate].
func (p HashEquals) Matches(r KnotRecord) bool { return r.Hash == p.Hash }

// NamePattern matches record names against a shell glob pattern
// (path.Match syntax, e.g. "torus-*"). A malformed pattern matches nothing.
type NamePattern struct {
	Pattern string
}

// Matches implements [Predicate].
func (p NamePattern) Matches(r KnotRecord) bool {
	ok, err := path.Match(p.Pattern, r.Name)
	return err == nil && ok
}

// MetadataEquals matches records whose metadata contains Key with exactly
// Value.
type MetadataEquals struct {
	Key, Value string
}

// Matches implements [Predicate].
func (p MetadataEquals) Matches(r KnotRecord) bool {
	v, ok := r.Metadata[p.Key]
	return ok && v == p.Value
}

func fieldValue(r KnotRecord, f Field) int {
	switch f {
	case FieldWrithe:
		return r.Writhe
	default:
		return r.Crossings
	}
}

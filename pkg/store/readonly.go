package store

import (
	"context"

	"github.com/mgeier/knotwork/pkg/knot"
)

// ReadOnly wraps a store and rejects every mutation with [ErrReadOnly].
// Reads pass through unchanged. Useful for handing a catalog to consumers
// that must not modify it (e.g. the HTTP API in read-only deployments).
type ReadOnly struct {
	inner Store
}

// NewReadOnly wraps the given store in a read-only handle.
// Closing the handle closes the underlying store.
func NewReadOnly(inner Store) *ReadOnly {
	return &ReadOnly{inner: inner}
}

// Create always returns [ErrReadOnly].
func (s *ReadOnly) Create(ctx context.Context, name string, code knot.GaussCode, metadata map[string]string) (KnotRecord, error) {
	return KnotRecord{}, ErrReadOnly
}

// Fetch delegates to the wrapped store.
func (s *ReadOnly) Fetch(ctx context.Context, name string) (KnotRecord, error) {
	return s.inner.Fetch(ctx, name)
}

// Query delegates to the wrapped store.
func (s *ReadOnly) Query(ctx context.Context, q Query) ([]KnotRecord, error) {
	return s.inner.Query(ctx, q)
}

// Delete always returns [ErrReadOnly].
func (s *ReadOnly) Delete(ctx context.Context, name string) error {
	return ErrReadOnly
}

// UpdateMetadata always returns [ErrReadOnly].
func (s *ReadOnly) UpdateMetadata(ctx context.Context, name string, delta map[string]string) (KnotRecord, error) {
	return KnotRecord{}, ErrReadOnly
}

// UpdateExtended always returns [ErrReadOnly].
func (s *ReadOnly) UpdateExtended(ctx context.Context, name string, extended map[string]any) (KnotRecord, error) {
	return KnotRecord{}, ErrReadOnly
}

// Close closes the underlying store.
func (s *ReadOnly) Close() error { return s.inner.Close() }

// Ensure ReadOnly implements Store.
var _ Store = (*ReadOnly)(nil)

package store

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mgeier/knotwork/pkg/knot"
)

// Memory is an in-memory store for development and testing.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]KnotRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]KnotRecord)}
}

// Create implements [Store].
func (m *Memory) Create(ctx context.Context, name string, code knot.GaussCode, metadata map[string]string) (KnotRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[name]; exists {
		return KnotRecord{}, ErrDuplicateName
	}
	rec := NewRecord(name, code, metadata)
	m.records[name] = rec
	return rec.Clone(), nil
}

// Fetch implements [Store].
func (m *Memory) Fetch(ctx context.Context, name string) (KnotRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[name]
	if !ok {
		return KnotRecord{}, ErrNotFound
	}
	return rec.Clone(), nil
}

// Query implements [Store]. Results are ordered by name.
func (m *Memory) Query(ctx context.Context, q Query) ([]KnotRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []KnotRecord
	for _, rec := range m.records {
		if q.Matches(rec) {
			out = append(out, rec.Clone())
		}
	}
	slices.SortFunc(out, func(a, b KnotRecord) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// Delete implements [Store].
func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[name]; !ok {
		return ErrNotFound
	}
	delete(m.records, name)
	return nil
}

// UpdateMetadata implements [Store].
func (m *Memory) UpdateMetadata(ctx context.Context, name string, delta map[string]string) (KnotRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[name]
	if !ok {
		return KnotRecord{}, ErrNotFound
	}
	rec = rec.Clone()
	for k, v := range delta {
		if v == "" {
			delete(rec.Metadata, k)
		} else {
			rec.Metadata[k] = v
		}
	}
	rec.UpdatedAt = time.Now().UTC()
	m.records[name] = rec
	return rec.Clone(), nil
}

// UpdateExtended implements [Store].
func (m *Memory) UpdateExtended(ctx context.Context, name string, extended map[string]any) (KnotRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[name]
	if !ok {
		return KnotRecord{}, ErrNotFound
	}
	rec = rec.Clone()
	if extended == nil {
		rec.Extended = nil
	} else {
		rec.Extended = maps.Clone(extended)
	}
	rec.UpdatedAt = time.Now().UTC()
	m.records[name] = rec
	return rec.Clone(), nil
}

// Close implements [Store]. It discards all records.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]KnotRecord)
	return nil
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mgeier/knotwork/pkg/store"
)

// WriteJSON encodes the records as a knot collection and writes it to w.
// Only the name, code, and metadata are written; invariants are recomputed
// on import, so persisting them in the flat format would only invite drift.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(records []store.KnotRecord, w io.Writer) error {
	out := collection{Knots: make([]entry, len(records))}
	for i, r := range records {
		e := entry{Name: r.Name, Code: r.Code.String()}
		if len(r.Metadata) > 0 {
			e.Metadata = r.Metadata
		}
		out.Knots[i] = e
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the records to a collection file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(records []store.KnotRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(records, f)
}

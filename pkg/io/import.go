package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mgeier/knotwork/pkg/knot"
)

// ReadJSON decodes a knot collection from r.
//
// Each entry must have a non-empty "name" and a "code" holding the textual
// gauss-code encoding. ReadJSON returns an error if:
//   - The JSON is malformed
//   - An entry is missing a name, or two entries share one
//   - A code fails to parse syntactically
//
// Codes that parse but are not well-formed do not fail the import: the
// decoded value is kept with Entry.WellFormed set to false. Errors are
// wrapped with the offending entry's name.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]Entry, error) {
	var data collection
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]struct{}, len(data.Knots))
	out := make([]Entry, 0, len(data.Knots))
	for i, e := range data.Knots {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: missing name", i)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("entry %q: duplicate name", e.Name)
		}
		seen[e.Name] = struct{}{}

		code, err := knot.Parse(e.Code)
		if err != nil && !knot.IsMalformed(err) {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		out = append(out, Entry{
			Name:       e.Name,
			Code:       code,
			Metadata:   e.Metadata,
			WellFormed: err == nil,
		})
	}
	return out, nil
}

// ImportJSON reads a collection file at path and returns the decoded entries.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

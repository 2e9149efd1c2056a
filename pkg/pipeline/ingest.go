package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mgeier/knotwork/pkg/io"
	"github.com/mgeier/knotwork/pkg/knot"
	"github.com/mgeier/knotwork/pkg/observability"
	"github.com/mgeier/knotwork/pkg/store"
)

// Ingest persists a batch of collection entries.
//
// Canonical forms are computed up front across a worker pool so the cache is
// warm before records are stored; store writes themselves happen serially in
// input order, which keeps duplicate handling deterministic. Entries whose
// names already exist are counted as duplicates and skipped, never an error.
// Malformed entries are skipped only in Strict mode.
func (r *Runner) Ingest(ctx context.Context, entries []io.Entry, opts Options) (*Result, error) {
	start := time.Now()
	result := &Result{}
	observability.Pipeline().OnIngestStart(ctx, len(entries))

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	r.warmCanonical(ctx, entries, workers)

	for _, e := range entries {
		if opts.Strict && !e.WellFormed {
			result.Malformed++
			r.Logger.Warn("skipping malformed diagram", "name", e.Name, "code", e.Code)
			continue
		}

		rec, err := r.Store.Create(ctx, e.Name, e.Code, e.Metadata)
		if errors.Is(err, store.ErrDuplicateName) {
			result.Duplicate++
			r.Logger.Debug("skipping duplicate", "name", e.Name)
			continue
		}
		if err != nil {
			err = fmt.Errorf("create %s: %w", e.Name, err)
			observability.Pipeline().OnIngestComplete(ctx,
				result.Created, result.Duplicate, result.Malformed, time.Since(start), err)
			return nil, err
		}

		if r.Provider != nil {
			if err := r.enrich(ctx, rec); err != nil {
				r.Logger.Warn("enrichment failed", "name", e.Name, "err", err)
			}
		}

		result.Created++
		result.Names = append(result.Names, e.Name)
	}

	r.Logger.Info("ingest complete",
		"created", result.Created,
		"duplicate", result.Duplicate,
		"malformed", result.Malformed,
		"duration", time.Since(start).Round(time.Millisecond))
	observability.Pipeline().OnIngestComplete(ctx,
		result.Created, result.Duplicate, result.Malformed, time.Since(start), nil)
	return result, nil
}

// warmCanonical computes canonical forms for all entries in parallel,
// populating the cache so later Canonical calls are hits.
func (r *Runner) warmCanonical(ctx context.Context, entries []io.Entry, workers int) {
	jobs := make(chan knot.GaussCode)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := range jobs {
				r.Canonical(ctx, g)
			}
		}()
	}
	for _, e := range entries {
		jobs <- e.Code
	}
	close(jobs)
	wg.Wait()
}

// enrich runs the registered invariant provider for the record and stores
// the provider output in the record's extended-invariant slot. A provider
// returning nothing leaves the slot unset.
func (r *Runner) enrich(ctx context.Context, rec store.KnotRecord) error {
	extended, err := r.Provider.Compute(ctx, rec.Code)
	if err != nil {
		return err
	}
	if len(extended) == 0 {
		return nil
	}
	_, err = r.Store.UpdateExtended(ctx, rec.Name, extended)
	return err
}

// DuplicateGroup is a set of stored records sharing a canonical form: the
// same diagram entered under different rotations or crossing numberings.
type DuplicateGroup struct {
	Canonical knot.GaussCode
	Records   []store.KnotRecord
}

// Dedupe groups all stored records by canonical form and returns the groups
// containing more than one record, i.e. the diagram-equivalent duplicates.
// Groups are ordered by the name of their first record; records within a
// group keep store order (sorted by name).
func (r *Runner) Dedupe(ctx context.Context) ([]DuplicateGroup, error) {
	records, err := r.Store.Query(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	byCanonical := make(map[string]*DuplicateGroup)
	var order []string
	for _, rec := range records {
		canonical := r.Canonical(ctx, rec.Code)
		key := canonical.String()
		grp, ok := byCanonical[key]
		if !ok {
			grp = &DuplicateGroup{Canonical: canonical}
			byCanonical[key] = grp
			order = append(order, key)
		}
		grp.Records = append(grp.Records, rec)
	}

	var out []DuplicateGroup
	for _, key := range order {
		if grp := byCanonical[key]; len(grp.Records) > 1 {
			out = append(out, *grp)
		}
	}
	return out, nil
}

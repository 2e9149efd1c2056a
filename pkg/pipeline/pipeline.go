// Package pipeline provides the ingest and deduplication pipeline shared by
// the CLI and the HTTP API.
//
// The pipeline takes decoded collection entries, computes invariants and
// canonical forms, optionally enriches records through a registered
// invariant provider, and persists the results. Canonicalization dominates
// the cost of a batch run - it is quadratic in sequence length - so canonical
// forms are computed across a worker pool and memoized in a [cache.Cache]
// keyed by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(st, c, logger)
//	result, err := runner.Ingest(ctx, entries, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	logger.Info("imported", "created", result.Created)
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mgeier/knotwork/pkg/cache"
	"github.com/mgeier/knotwork/pkg/knot"
	"github.com/mgeier/knotwork/pkg/observability"
	"github.com/mgeier/knotwork/pkg/store"
)

// DefaultWorkers is the number of goroutines canonicalizing diagrams during
// a batch ingest. Canonicalization is pure, so parallelism needs no
// synchronization beyond the result channel.
const DefaultWorkers = 4

// Options configures a batch ingest.
type Options struct {
	// Strict rejects entries whose codes are not well-formed instead of
	// importing them flagged. Default is the permissive behavior.
	Strict bool

	// Workers is the canonicalization pool size. Zero means DefaultWorkers.
	Workers int
}

// Result summarizes a batch ingest.
type Result struct {
	Created   int      // Records persisted
	Duplicate int      // Entries skipped because the name was taken
	Malformed int      // Entries rejected by Strict mode
	Names     []string // Names of created records, in input order
}

// Runner executes ingest and deduplication runs against a store.
//
// The Runner is stateless apart from its collaborators; a single Runner can
// be shared by concurrent callers.
type Runner struct {
	Store    store.Store
	Cache    cache.Cache
	Provider knot.InvariantProvider // optional; nil disables enrichment
	Logger   *log.Logger
}

// NewRunner creates a runner over the given store.
// If c is nil, a NullCache is used (memoization disabled).
// If logger is nil, log.Default() is used.
func NewRunner(st store.Store, c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: st, Cache: c, Logger: logger}
}

// Canonical returns the canonical form of g, consulting the cache first.
// The cache key is the content hash of the raw sequence, which fully
// determines the canonical form. Cache failures are logged and ignored -
// the canonical form is simply recomputed.
func (r *Runner) Canonical(ctx context.Context, g knot.GaussCode) knot.GaussCode {
	key := cache.CanonicalKey(g.ContentHash())

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if cached, err := knot.Parse(string(data)); err == nil || knot.IsMalformed(err) {
			observability.Cache().OnCacheHit(ctx, "canonical")
			return cached
		}
	}
	observability.Cache().OnCacheMiss(ctx, "canonical")

	start := time.Now()
	canonical := g.Canonical()
	observability.Pipeline().OnCanonicalComplete(ctx, g.CrossingNumber(), time.Since(start))

	encoded := []byte(canonical.String())
	if err := r.Cache.Set(ctx, key, encoded, 0); err != nil {
		r.Logger.Debug("canonical cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "canonical", len(encoded))
	}
	return canonical
}

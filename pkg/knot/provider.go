package knot

import (
	"context"
	"maps"
)

// InvariantProvider computes richer invariants (e.g. polynomial invariants)
// that this package does not implement itself. Providers are optional
// capabilities: when none is registered, the extended-invariant slot of a
// stored record simply stays unset. Nothing in this package depends on a
// provider being present.
type InvariantProvider interface {
	// Name returns the provider identifier (e.g. "jones").
	Name() string
	// Compute returns the provider's invariants for the diagram, keyed by
	// invariant name. Values are provider-defined and treated as opaque.
	Compute(ctx context.Context, g GaussCode) (map[string]any, error)
}

// Converter translates between GaussCode and an external diagram
// representation (for example planar diagram codes used by polynomial
// libraries). Both directions are optional capabilities supplied alongside
// an [InvariantProvider].
type Converter interface {
	// ToExternal converts a GaussCode to the provider's representation.
	ToExternal(g GaussCode) (any, error)
	// FromExternal converts the provider's representation back to a GaussCode.
	FromExternal(v any) (GaussCode, error)
}

// CompositeProvider fans a Compute call out to several providers and merges
// their results. Providers that fail are skipped; a composite over zero
// providers returns an empty map.
type CompositeProvider struct {
	providers []InvariantProvider
}

// NewCompositeProvider combines the given providers into one.
func NewCompositeProvider(providers ...InvariantProvider) *CompositeProvider {
	return &CompositeProvider{providers}
}

// Name returns "composite".
func (c *CompositeProvider) Name() string { return "composite" }

// Compute merges the results of all registered providers. Later providers
// overwrite keys written by earlier ones.
func (c *CompositeProvider) Compute(ctx context.Context, g GaussCode) (map[string]any, error) {
	m := make(map[string]any)
	for _, p := range c.providers {
		if res, err := p.Compute(ctx, g); err == nil {
			maps.Copy(m, res)
		}
	}
	return m, nil
}

var _ InvariantProvider = (*CompositeProvider)(nil)

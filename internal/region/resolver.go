package region

import "github.com/mustaphathe3rd/neighbourhood/internal/geo"

// FallbackRadiusKm is the default search radius for regions with no
// configured radius and for searchers whose region could not be resolved.
const FallbackRadiusKm = 100

// Resolver answers point-in-region lookups against an immutable boundary set
// and serves the region-to-default-radius table. Both are loaded once at
// process start; Resolver is safe for concurrent use.
type Resolver struct {
	boundaries []Boundary
	radii      map[string]int
}

// NewResolver builds a resolver over the given boundaries and per-region
// default radii (kilometers). radii may be nil.
func NewResolver(boundaries []Boundary, radii map[string]int) *Resolver {
	r := &Resolver{boundaries: boundaries, radii: make(map[string]int, len(radii))}
	for name, km := range radii {
		r.radii[name] = km
	}
	return r
}

// Resolve returns the name of the region containing p. With degenerate
// overlapping boundary data the first containing boundary in dataset order
// wins, so repeated lookups stay deterministic. The second return is false
// when no boundary contains the point.
func (r *Resolver) Resolve(p geo.Point) (string, bool) {
	for _, b := range r.boundaries {
		for _, poly := range b.Polys {
			if poly.contains(p) {
				return b.Name, true
			}
		}
	}
	return "", false
}

// DefaultRadiusKm returns the configured search radius for a region, or
// FallbackRadiusKm for unknown regions and non-positive configured values.
func (r *Resolver) DefaultRadiusKm(name string) int {
	if km, ok := r.radii[name]; ok && km > 0 {
		return km
	}
	return FallbackRadiusKm
}

// Package searcher implements the unified price search pipeline.
//
// A search runs through fixed stages:
//
//	validate -> resolve region -> prefix match -> (empty?) -> substring match
//	         -> enrich (ratings, distances) -> assemble -> rank
//
// Region resolution is best effort: an unresolved searcher location is not an
// error, it only disables the out-of-state flag and falls back to the default
// radius constant. The substring phase runs only when the prefix phase finds
// zero candidates, and re-applies every structural filter identically — it is
// an independent re-query, never a union with the prefix set.
//
// Results have one fixed shape regardless of query mode. Ratings and
// distances are enrichments, never filters: a listing with no reviews is a
// valid result with a nil rating.
//
// # Basic Usage
//
//	s, err := searcher.New(store, resolver)
//
//	resp, err := s.Search(ctx, types.SearchQuery{
//	    Text:   "rice",
//	    SortBy: types.SortPriceAsc,
//	})
//
//	for _, r := range resp.Results {
//	    fmt.Printf("%s at %s: %.2f\n", r.ProductName, r.StoreName, r.Price)
//	}
//
// Identical in-flight requests are deduplicated and responses are cached in a
// TTL-bounded LRU keyed by a hash of the full request. Each request is
// bounded by a timeout; on expiry the search fails closed rather than
// returning a partial, unranked set.
package searcher

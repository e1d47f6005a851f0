// Package types defines the domain records and value objects shared across
// the price search engine: the catalog entities (products, stores, market
// areas, the city/state hierarchy, price listings, reviews), the SearchQuery
// and SearchResult value objects exchanged with callers, and the error
// taxonomy the engine surfaces.
//
// Everything here is read-only from the engine's perspective. SearchResult
// has one fixed shape regardless of query mode: distance and the
// out-of-state flag are nil whenever the query carried no coordinates, and
// the average rating is nil for listings without reviews.
package types

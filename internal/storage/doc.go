// Package storage persists the catalog and serves the narrow read interface
// the search engine depends on. The engine never traverses an object graph:
// FindListings returns flat, already-joined listing rows (price + product +
// store + market area + city + state), and ListReviews returns the raw
// rating triples the aggregator consumes.
//
// Two SQLite drivers are supported via build tags: modernc.org/sqlite (pure
// Go, the default) and mattn/go-sqlite3 (cgo). Schema changes ship as
// versioned migrations applied at open time.
//
// Write operations exist for dataset loading and tests; the search path is
// read-only and issues no transactions.
package storage

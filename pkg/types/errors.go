package types

import "errors"

// Error taxonomy surfaced by the search engine. An empty result set is not an
// error and is returned as a zero-length list; an unresolved searcher region
// is a soft condition that only disables the out-of-state flag.
var (
	// ErrInvalidQuery marks malformed input rejected before any datastore
	// access (radius <= 0, incomplete coordinate pair, unknown sort strategy).
	ErrInvalidQuery = errors.New("invalid query")

	// ErrRepository marks an unreachable or misbehaving catalog datastore.
	ErrRepository = errors.New("repository failure")

	// ErrTimeout marks a search that exceeded its per-request deadline. The
	// engine fails closed rather than returning a partial, unranked set.
	ErrTimeout = errors.New("search timed out")
)

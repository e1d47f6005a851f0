package searcher

import "errors"

var (
	// ErrStorageRequired is returned when a catalog storage is not provided.
	ErrStorageRequired = errors.New("catalog storage required")

	// ErrResolverRequired is returned when a region resolver is not provided.
	ErrResolverRequired = errors.New("region resolver required")
)

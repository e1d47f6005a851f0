package types

import "fmt"

// SortStrategy selects the total order applied to search results.
type SortStrategy string

const (
	// SortPriceAsc orders by price ascending. This is the default.
	SortPriceAsc SortStrategy = "price_asc"
	// SortPriceDesc orders by price descending.
	SortPriceDesc SortStrategy = "price_desc"
	// SortRatingDesc orders by average rating descending; unrated listings
	// sort after all rated ones.
	SortRatingDesc SortStrategy = "rating_desc"
	// SortDistanceAsc orders by distance ascending. Only meaningful when the
	// query carries coordinates; without them it behaves as SortPriceAsc.
	SortDistanceAsc SortStrategy = "distance_asc"
)

// ParseSortStrategy maps a transport-level string onto a SortStrategy.
// The empty string selects the default.
func ParseSortStrategy(s string) (SortStrategy, error) {
	switch SortStrategy(s) {
	case "", SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortRatingDesc:
		return SortRatingDesc, nil
	case SortDistanceAsc:
		return SortDistanceAsc, nil
	default:
		return "", fmt.Errorf("%w: unknown sort strategy %q", ErrInvalidQuery, s)
	}
}

package searcher

import (
	"sort"

	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

// rank orders results in place per the requested strategy. Sorting is stable
// so equal keys preserve assembler order and repeated identical queries
// return identical orderings. distance_asc without coordinates degrades to
// the default price ascending order.
func rank(results []types.SearchResult, strategy types.SortStrategy, hasCoordinates bool) {
	if strategy == types.SortDistanceAsc && !hasCoordinates {
		strategy = types.SortPriceAsc
	}

	switch strategy {
	case types.SortPriceDesc:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Price > results[j].Price
		})
	case types.SortRatingDesc:
		sort.SliceStable(results, func(i, j int) bool {
			ri, rj := results[i].AvgRating, results[j].AvgRating
			if ri == nil {
				return false // unrated never wins
			}
			if rj == nil {
				return true // rated sorts before unrated
			}
			return *ri > *rj
		})
	case types.SortDistanceAsc:
		sort.SliceStable(results, func(i, j int) bool {
			di, dj := results[i].DistanceKm, results[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	default: // price_asc
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Price < results[j].Price
		})
	}
}

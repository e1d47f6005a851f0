package searcher

import (
	"github.com/mustaphathe3rd/neighbourhood/internal/rating"
	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

// assemble joins one candidate listing with its aggregated rating and the
// searcher's resolved region into the fixed result shape. Rating and distance
// are enrichments, never filters: a pair without reviews keeps a nil rating
// and stays in the result set. The out-of-state flag is nil — not false —
// when the searcher's region is unresolved, so callers can tell "not flagged"
// from "unknown".
func assemble(c candidate, means map[rating.Pair]float64, userRegion *string) types.SearchResult {
	result := types.SearchResult{
		ProductID:   c.row.ProductID,
		ProductName: c.row.ProductName,
		ImageRef:    c.row.ImageRef,
		Price:       c.row.Price,
		StoreID:     c.row.StoreID,
		StoreName:   c.row.StoreName,
		MarketArea:  c.row.MarketArea,
		City:        c.row.City,
		State:       c.row.State,
		Timestamp:   c.row.Timestamp,
		StockLevel:  c.row.StockLevel,
		DistanceKm:  c.distanceKm,
		Lat:         c.row.Lat,
		Lon:         c.row.Lon,
	}

	if mean, ok := means[rating.Pair{ProductID: c.row.ProductID, StoreID: c.row.StoreID}]; ok {
		result.AvgRating = &mean
	}

	if userRegion != nil {
		outOfState := c.row.State != *userRegion
		result.IsOutOfState = &outOfState
	}

	return result
}

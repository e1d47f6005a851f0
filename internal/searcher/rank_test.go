package searcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

func fp(v float64) *float64 { return &v }

func listing(store string, price float64, rating, distance *float64) types.SearchResult {
	return types.SearchResult{
		StoreName:  store,
		Price:      price,
		AvgRating:  rating,
		DistanceKm: distance,
	}
}

func names(results []types.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.StoreName
	}
	return out
}

func TestRankPriceAscDefault(t *testing.T) {
	results := []types.SearchResult{
		listing("b", 8500, nil, nil),
		listing("a", 8000, nil, nil),
		listing("c", 9200, nil, nil),
	}
	rank(results, types.SortPriceAsc, false)
	assert.Equal(t, []string{"a", "b", "c"}, names(results))
}

func TestRankPriceDesc(t *testing.T) {
	results := []types.SearchResult{
		listing("a", 8000, nil, nil),
		listing("c", 9200, nil, nil),
		listing("b", 8500, nil, nil),
	}
	rank(results, types.SortPriceDesc, false)
	assert.Equal(t, []string{"c", "b", "a"}, names(results))
}

func TestRankStableOnEqualKeys(t *testing.T) {
	results := []types.SearchResult{
		listing("first", 8000, nil, nil),
		listing("second", 8000, nil, nil),
		listing("third", 8000, nil, nil),
	}
	rank(results, types.SortPriceAsc, false)
	assert.Equal(t, []string{"first", "second", "third"}, names(results))
}

func TestRankRatingDescUnratedLast(t *testing.T) {
	results := []types.SearchResult{
		listing("unrated", 7000, nil, nil),
		listing("low", 9000, fp(2.0), nil),
		listing("high", 8000, fp(4.5), nil),
	}
	rank(results, types.SortRatingDesc, false)
	assert.Equal(t, []string{"high", "low", "unrated"}, names(results))
}

func TestRankRatingDescAllUnratedKeepsOrder(t *testing.T) {
	results := []types.SearchResult{
		listing("a", 9000, nil, nil),
		listing("b", 7000, nil, nil),
	}
	rank(results, types.SortRatingDesc, false)
	assert.Equal(t, []string{"a", "b"}, names(results))
}

func TestRankDistanceAsc(t *testing.T) {
	results := []types.SearchResult{
		listing("far", 7000, nil, fp(48.77)),
		listing("near", 9000, nil, fp(1.12)),
	}
	rank(results, types.SortDistanceAsc, true)
	assert.Equal(t, []string{"near", "far"}, names(results))
}

func TestRankDistanceAscWithoutCoordinatesDegradesToPrice(t *testing.T) {
	results := []types.SearchResult{
		listing("pricier", 9000, nil, nil),
		listing("cheaper", 7000, nil, nil),
	}
	rank(results, types.SortDistanceAsc, false)
	assert.Equal(t, []string{"cheaper", "pricier"}, names(results))
}

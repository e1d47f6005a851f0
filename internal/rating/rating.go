// Package rating aggregates raw reviews into mean ratings per listing pair.
package rating

import "math"

// Pair identifies one product as sold by one store. Two stores selling the
// same product carry independent ratings.
type Pair struct {
	ProductID int64
	StoreID   int64
}

// Review is the minimal projection the aggregator needs.
type Review struct {
	ProductID int64
	StoreID   int64
	Rating    int
}

// Aggregate computes the arithmetic mean rating per (product, store) pair,
// rounded to two decimals. A straight mean: no trimming, no weighting. Pairs
// with no reviews are absent from the map; callers treat absence as
// "no rating", never as zero.
func Aggregate(reviews []Review) map[Pair]float64 {
	sums := make(map[Pair]int)
	counts := make(map[Pair]int)
	for _, r := range reviews {
		key := Pair{ProductID: r.ProductID, StoreID: r.StoreID}
		sums[key] += r.Rating
		counts[key]++
	}

	means := make(map[Pair]float64, len(sums))
	for key, sum := range sums {
		means[key] = round2(float64(sum) / float64(counts[key]))
	}
	return means
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

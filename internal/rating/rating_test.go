package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	reviews := []Review{
		{ProductID: 1, StoreID: 10, Rating: 5},
		{ProductID: 1, StoreID: 10, Rating: 4},
		{ProductID: 1, StoreID: 10, Rating: 4},
		{ProductID: 1, StoreID: 20, Rating: 2},
		{ProductID: 2, StoreID: 10, Rating: 3},
	}

	means := Aggregate(reviews)

	// Same product rated independently per store.
	assert.Equal(t, 4.33, means[Pair{ProductID: 1, StoreID: 10}])
	assert.Equal(t, 2.0, means[Pair{ProductID: 1, StoreID: 20}])
	assert.Equal(t, 3.0, means[Pair{ProductID: 2, StoreID: 10}])

	// Unreviewed pairs are absent, not zero.
	_, ok := means[Pair{ProductID: 2, StoreID: 20}]
	assert.False(t, ok)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]Review{}))
}

func TestAggregateRounding(t *testing.T) {
	means := Aggregate([]Review{
		{ProductID: 1, StoreID: 1, Rating: 1},
		{ProductID: 1, StoreID: 1, Rating: 2},
		{ProductID: 1, StoreID: 1, Rating: 2},
	})
	// 5/3 rounds to 1.67.
	assert.Equal(t, 1.67, means[Pair{ProductID: 1, StoreID: 1}])
}

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Run("ZeroForSamePoint", func(t *testing.T) {
		p := Point{Lat: 4.83, Lon: 7.05}
		assert.Equal(t, 0.0, Distance(p, p))
	})

	t.Run("OneDegreeLatitude", func(t *testing.T) {
		// One degree of latitude is ~111.19 km on the IUGG sphere.
		a := Point{Lat: 0, Lon: 0}
		b := Point{Lat: 1, Lon: 0}
		assert.InDelta(t, 111.19, Distance(a, b), 0.1)
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := Point{Lat: 4.83, Lon: 7.05}
		b := Point{Lat: 6.45, Lon: 3.39}
		assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
	})

	t.Run("LongitudeShrinksAwayFromEquator", func(t *testing.T) {
		atEquator := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 1})
		atSixty := Distance(Point{Lat: 60, Lon: 0}, Point{Lat: 60, Lon: 1})
		assert.Less(t, atSixty, atEquator)
	})
}

func TestWithinRadius(t *testing.T) {
	origin := Point{Lat: 0, Lon: 0}
	near := Point{Lat: 0.01, Lon: 0}  // ~1.1 km
	far := Point{Lat: 0.1, Lon: 0}    // ~11.1 km

	d, ok := WithinRadius(origin, near, 5)
	assert.True(t, ok)
	assert.InDelta(t, 1.11, d, 0.05)

	_, ok = WithinRadius(origin, far, 5)
	assert.False(t, ok)

	// Monotonicity: anything inside radius R stays inside R' > R.
	for _, p := range []Point{near, far} {
		_, atTwenty := WithinRadius(origin, p, 20)
		assert.True(t, atTwenty)
	}
}
